// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens and hashing utilities for the ideas API.

# Session Tokens

Session tokens bind a user id to an HMAC-SHA256 signature:

	token := auth.GenerateSessionToken(userID, salt)   // "<user>.<mac>"
	userID, err := auth.ValidateSessionToken(token, salt)

The MAC is URL-safe base64 without padding. Tokens are deterministic, so the
same user and salt always produce the same token and validation needs no
database lookup. The token travels in the "session" cookie.

The board reads the user id back out of its configured token to mark the
user's own votes and ideas:

	userID := auth.SessionUserID(token)

That value is unverified and used only for display.

# ID Generation

Random hex IDs for development users:

	id, err := auth.GenerateID(8)  // 16 hex characters

# IP Hashing

Rate limiting keys clients by a salted hash rather than the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
