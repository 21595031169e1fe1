// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render projects idea records into what the board displays.

# Cards

Each record becomes a Card: title, description truncated to 180 runes,
category, image (DefaultImage when empty), vote counts, and whether the
session user's id is in either vote set.

	r := render.New(userID)
	grid := r.Grid(ideas)

Rendering is a pure function of its input and the renderer's clock.
Rendering the same list twice yields identical cards.

# Stats

	ideas      = number of records
	votes      = sum of upvote and downvote set sizes
	categories = number of distinct category values

# Detail

Detail projects a single record with its full description. A missing image
falls back to a seeded placeholder.

# HTML

WriteHTML executes the embedded page template for a View.
*/
package render
