// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ideaboard presentation server.

ideaboard renders an ideas board (cards, stats, a detail view) and turns
every user interaction into a call against the ideas REST API. All
persistence, authorization and moderation happen in that API.

# Starting the Server

The server needs the API location and, for writes, a session token:

	IDEAS_API_URL=http://localhost:3318 IDEAS_SESSION=alice.<mac> go run .

Or with flags:

	go run . -p 3319 -api http://localhost:3318

A local .env file is loaded first when present.

# Configuration

Required settings:

  - IDEAS_API_URL (-api): Base URL of the ideas API

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - IDEAS_SESSION (-session): Session token sent as the "session" cookie
  - IDEAS_USER_ID (-user): Viewer id (default: taken from the session token)
  - IDEAS_TRUNCATE (-truncate): Card description length (default: 180)
  - IDEAS_DEBOUNCE_MS (-debounce): Filter input quiet time (default: 250)
  - IDEAS_DEFAULT_IMAGE (-default-image): Card image fallback
  - LOG_FORMAT (-log): text, json or auto

Pass -dump to load the board once, pretty print it and exit.

# Development API

cmd/ideas-api serves the same REST API over sqlite or postgres for local
runs and tests. POST /dev/session on it issues a session token.

# Architecture

  - board: Event loop binding user actions to handlers
  - store, render, detail, reconcile, debounce: Board state and projections
  - apiclient: Typed client for the ideas API
  - web: HTML page and form/JSON routes
  - handlers, router, db, auth: The development API
  - middleware, logging, cliparse: Shared infrastructure

See package documentation for each component.
*/
package main
