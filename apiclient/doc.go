// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is a typed client for the ideas API.

# Usage

	c := apiclient.New("http://localhost:3318", apiclient.WithSessionToken(token))
	ideas, err := c.ListIdeas(ctx, models.Filter{Sort: models.SortPopular})

Every method takes a context and performs exactly one HTTP request. There
are no retries and no caching; the client holds configuration only.

# Endpoints

	GET    /api/ideas              → ListIdeas
	POST   /api/ideas              → CreateIdea (multipart)
	POST   /api/ideas/{id}/vote    → Vote
	POST   /api/ideas/{id}/report  → Report
	POST   /edit_idea/{id}         → EditIdea (multipart)
	DELETE /delete_idea/{id}       → DeleteIdea
	DELETE /delete_report/{id}     → DeleteReport
	POST   /approve/{id}           → ApproveRequest
	POST   /reject/{id}            → RejectRequest
	POST   /developer_request      → RequestDeveloperAccess

# Errors

A request that never produced a response returns *NetworkError. A
response with status >= 400, or a {"success": false} envelope, returns
*APIError carrying the server's message.
*/
package apiclient
