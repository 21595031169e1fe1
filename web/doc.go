// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package web serves the idea board to browsers.

Every route turns a request into a board.Action and waits for it to
settle. Form posts are redirected back to the page with 303 so a reload
never resubmits; requests sending Accept: application/json get the
outcome instead:

	{"view": {...}, "notice": "Idea submitted!"}

Errors keep the same shape with an "error" field and a status derived from
the failure: 400 for missing input, the API's own 4xx, and 502 when the
ideas API is unreachable or failing.
*/
package web
