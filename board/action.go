// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"errors"

	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/render"
)

// Kind names a user action the board knows how to handle
type Kind int

const (
	KindLoad Kind = iota
	KindFilter
	KindVote
	KindSubmit
	KindOpen
	KindClose
	KindEdit
	KindDelete
	KindReport
	KindMine
	KindDeleteReport
	KindApprove
	KindReject
	KindRequestAccess
	KindApplyFilter
	KindChat
)

var kindNames = map[Kind]string{
	KindLoad:          "load",
	KindFilter:        "filter",
	KindVote:          "vote",
	KindSubmit:        "submit",
	KindOpen:          "open",
	KindClose:         "close",
	KindEdit:          "edit",
	KindDelete:        "delete",
	KindReport:        "report",
	KindMine:          "mine",
	KindDeleteReport:  "delete_report",
	KindApprove:       "approve",
	KindReject:        "reject",
	KindRequestAccess: "request_access",
	KindApplyFilter:   "apply_filter",
	KindChat:          "chat",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is one user interaction. Only the fields its Kind uses are read.
type Action struct {
	Kind     Kind
	IdeaID   models.ID
	TargetID models.ID
	Vote     models.VoteType
	Filter   models.Filter
	Idea     models.NewIdea
	Edit     models.IdeaEdit
	Text     string
}

// Outcome is what the user sees after an action has fully settled
type Outcome struct {
	View   render.View
	Notice string
	Mine   []render.Card
	Reply  string
	Err    error
}

var (
	ErrStopped       = errors.New("board is not running")
	ErrUnknownAction = errors.New("unknown action")
	ErrNotLoaded     = errors.New("idea is not in the current list")
	ErrNoSession     = errors.New("no session user configured")
	ErrInvalidInput  = errors.New("invalid input")
)

// ValidationError reports required input that was missing before any
// request was sent. It matches ErrInvalidInput.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
