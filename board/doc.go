// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package board ties the idea store, renderer, detail view and vote
reconciler to a single event loop.

# Event Loop

Run owns all board state. Dispatch queues an Action on the loop, and the
handler bound to its Kind runs to completion there. Network calls happen on
their own goroutines. Their results are posted back to the loop and
applied in the order they arrive. Overlapping requests are neither
coalesced nor cancelled.

	b := board.New(client, board.Options{UserID: user})
	go b.Run(ctx)
	outcome, err := b.Do(ctx, board.Action{Kind: board.KindVote, IdeaID: id, Vote: models.VoteUp})

# Actions

	KindLoad          full list fetch with the current filter
	KindFilter        store the filter, reload after the debounce window
	KindVote          send vote, apply the returned record
	KindSubmit        create idea, show it first until the next load
	KindOpen/Close    detail view
	KindEdit          edit, then full reload
	KindDelete        delete, close detail if open on it, full reload
	KindReport        report an idea
	KindMine          list the session user's ideas
	KindDeleteReport, KindApprove, KindReject, KindRequestAccess
	                  moderation calls, notice only

# Errors

Every failure ends up in Outcome.Err and in the rendered view's Error
banner. Empty required text is caught before any request as a
*ValidationError. Nothing is retried.
*/
package board
