// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/ideas", middleware.WithLogging(handler))
	r.Use(middleware.Logging)

Logs request start (method, path, remote) and completion (status,
duration_ms) under a request id, which is echoed in X-Request-ID.

# Rate Limiting

A token bucket per client, keyed by a salted hash of the client IP:

	rl := middleware.NewRateLimiter(5, 10, salt)
	handler = rl.Middleware(handler)

Requests over the limit get 429 with Retry-After.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Errors use the {"error": "message"} envelope the ideas client reads.

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
