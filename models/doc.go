// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
ideas API, its client, and the board.

# Domain Types

  - Idea: the authoritative idea record with its upvote and downvote sets
  - Report: a user report filed against an idea
  - DeveloperRequest: a pending request for developer access
  - ID: opaque identifier, decoded from JSON numbers or strings

Vote sets hold user IDs. A user appears in at most one of the two sets:

	idea.HasUpvote(user)
	idea.HasDownvote(user)

# Request Types

  - VoteRequest: voteType ("upvote" or "downvote")
  - ReportRequest: description
  - DeveloperAccessRequest: reason
  - SessionRequest: user_id (development sessions only)
  - NewIdea, IdeaEdit: multipart form bodies, with an optional Upload

# Response Types

  - EditResponse: success, image_url, error
  - DeleteResponse: success, message, error
  - SessionResponse: user_id, token
  - ErrorResponse: error, message

# Constants

Vote directions:

	VoteUp   = "upvote"
	VoteDown = "downvote"

Sort orders:

	SortNewest   = "newest"   // id descending
	SortPopular  = "popular"  // upvotes minus downvotes
	SortTrending = "trending" // upvotes

Account types:

	AccountUser      = "user"
	AccountDeveloper = "developer"
	AccountAdmin     = "admin"
*/
package models
