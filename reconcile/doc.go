// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reconcile applies vote responses to the idea store.

A vote is sent with Request. The record in the response is authoritative:
Apply swaps it into the store whole and refreshes the detail view when that
idea is open. A failed request changes nothing and is never retried.

	r := reconcile.New(client, store, detail)
	r.OnApply = func(reconcile.Result) { rerender() }
	_, err := r.Vote(ctx, id, models.VoteUp)
*/
package reconcile
