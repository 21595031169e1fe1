// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ideas API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - IdeaHandler: Listing, submission, edits and deletion of ideas
  - VotingHandler: Up and down votes
  - ReportHandler: Idea reports and their removal
  - ModerationHandler: Developer access requests
  - SessionHandler: Development session tokens

Handlers are created via constructor functions that accept *sql.DB and Config:

	ideaHandler := handlers.NewIdeaHandler(db, cfg)

# Ideas

	GET    /api/ideas            → ListIdeas (search, category, sort)
	POST   /api/ideas            → CreateIdea (multipart, optional image)
	POST   /edit_idea/{id}       → EditIdea (owner only)
	DELETE /delete_idea/{id}     → DeleteIdea (owner, developer or admin)

Sorting happens after the newest-first query so ties keep newest first:
popular orders by upvotes minus downvotes, trending by upvotes.

# Voting

	POST /api/ideas/{id}/vote → Vote

Votes toggle: repeating a direction retracts it, the other direction
switches it. The response is the updated idea.

# Moderation

	POST   /api/ideas/{id}/report → ReportIdea
	DELETE /delete_report/{id}    → DeleteReport (developer or admin)
	POST   /developer_request     → RequestAccess
	POST   /approve/{id}          → Approve (admin)
	POST   /reject/{id}           → Reject (admin)

# Sessions

Every write requires the signed "session" cookie. POST /dev/session mints
one for a given or generated user id.

Queries use $N placeholders so the same statements run on sqlite and
postgres.
*/
package handlers
