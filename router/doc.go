// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ideas API.

# Route Registration

NewRouter returns an http.ServeMux with all endpoints, wrapped in the
optional per-client rate limiter and CORS:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Ideas:

	GET    /api/ideas             - List with search, category and sort
	POST   /api/ideas             - Submit (multipart)
	POST   /api/ideas/{id}/vote   - Toggle a vote
	POST   /api/ideas/{id}/report - Report
	POST   /edit_idea/{id}        - Edit (owner)
	DELETE /delete_idea/{id}      - Delete (owner, developer or admin)

Moderation:

	DELETE /delete_report/{id}  - Remove a report
	POST   /developer_request   - Ask for developer access
	POST   /approve/{id}        - Approve a request (admin)
	POST   /reject/{id}         - Reject a request (admin)

Sessions and assets:

	POST /dev/session    - Issue a session cookie
	GET  /images/{name}  - Uploaded images

CORS echoes the caller's origin and allows credentials so a board served
from another port can send the session cookie.
*/
package router
