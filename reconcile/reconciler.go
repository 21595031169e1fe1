// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/ideaboard/detail"
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/store"
)

var ErrInvalidVote = errors.New("vote type must be upvote or downvote")

// Voter sends a vote and returns the server's updated record
type Voter interface {
	Vote(ctx context.Context, id models.ID, vt models.VoteType) (*models.Idea, error)
}

// Result describes what an applied vote response touched
type Result struct {
	Replaced        bool
	DetailRefreshed bool
}

// Reconciler applies authoritative vote responses. The client never
// computes vote state itself.
type Reconciler struct {
	voter  Voter
	store  *store.Store
	detail *detail.Controller
	// OnApply runs after every applied response, typically a re-render
	OnApply func(Result)
}

func New(voter Voter, s *store.Store, d *detail.Controller) *Reconciler {
	return &Reconciler{voter: voter, store: s, detail: d}
}

// Request sends the vote without touching any local state. It is safe to
// call from any goroutine.
func (r *Reconciler) Request(ctx context.Context, id models.ID, vt models.VoteType) (*models.Idea, error) {
	if !vt.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVote, vt)
	}
	rec, err := r.voter.Vote(ctx, id, vt)
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}

// Apply replaces the record in the store and refreshes the detail view if
// it is open on the same idea. It must run on the goroutine that owns the
// store.
func (r *Reconciler) Apply(rec models.Idea) Result {
	res := Result{
		Replaced: r.store.Replace(rec.ID, rec),
	}
	if r.detail != nil {
		res.DetailRefreshed = r.detail.Refresh(rec)
	}
	if r.OnApply != nil {
		r.OnApply(res)
	}
	return res
}

// Vote is Request followed by Apply. On failure nothing is changed.
func (r *Reconciler) Vote(ctx context.Context, id models.ID, vt models.VoteType) (Result, error) {
	rec, err := r.Request(ctx, id, vt)
	if err != nil {
		return Result{}, err
	}
	return r.Apply(*rec), nil
}
