// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/render"
)

func (b *Board) handleLoad(a Action, done func(Outcome)) {
	b.refetch("", done)
}

// handleFilter records the new query at once and reloads after the input
// has been quiet for the debounce window.
func (b *Board) handleFilter(a Action, done func(Outcome)) {
	b.filter = a.Filter.Normalize()
	b.reload.Trigger()
	done(Outcome{})
}

// handleApplyFilter records the new query and reloads at once, dropping
// any reload still waiting out the debounce window.
func (b *Board) handleApplyFilter(a Action, done func(Outcome)) {
	b.filter = a.Filter.Normalize()
	b.reload.Cancel()
	b.refetch("", done)
}

func (b *Board) handleVote(a Action, done func(Outcome)) {
	if !a.Vote.Valid() {
		done(Outcome{Err: &ValidationError{Field: "voteType"}})
		return
	}

	var rec *models.Idea
	b.async("vote", func(ctx context.Context) error {
		var err error
		rec, err = b.votes.Request(ctx, a.IdeaID, a.Vote)
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		b.votes.Apply(*rec)
		done(Outcome{})
	})
}

// handleSubmit shows the created idea first until the next full load.
func (b *Board) handleSubmit(a Action, done func(Outcome)) {
	if err := requireText(
		field{"title", a.Idea.Title},
		field{"description", a.Idea.Description},
	); err != nil {
		done(Outcome{Err: err})
		return
	}

	var rec *models.Idea
	b.async("submit", func(ctx context.Context) error {
		var err error
		rec, err = b.api.CreateIdea(ctx, a.Idea)
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		b.store.Prepend(*rec)
		done(Outcome{Notice: "Idea submitted!"})
	})
}

func (b *Board) handleOpen(a Action, done func(Outcome)) {
	idea, ok := b.store.Get(a.IdeaID)
	if !ok {
		done(Outcome{Err: fmt.Errorf("%w: %s", ErrNotLoaded, a.IdeaID)})
		return
	}
	b.detail.Open(idea)
	done(Outcome{})
}

func (b *Board) handleClose(a Action, done func(Outcome)) {
	b.detail.Close()
	done(Outcome{})
}

// handleEdit reloads the list on success since the edit response carries
// no record.
func (b *Board) handleEdit(a Action, done func(Outcome)) {
	if err := requireText(
		field{"title", a.Edit.Title},
		field{"description", a.Edit.Description},
	); err != nil {
		done(Outcome{Err: err})
		return
	}

	b.async("edit", func(ctx context.Context) error {
		_, err := b.api.EditIdea(ctx, a.IdeaID, a.Edit)
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		b.refetch("Idea updated!", done)
	})
}

func (b *Board) handleDelete(a Action, done func(Outcome)) {
	b.async("delete", func(ctx context.Context) error {
		return b.api.DeleteIdea(ctx, a.IdeaID)
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		if b.detail.IsOpen(a.IdeaID) {
			b.detail.Close()
		}
		b.refetch("Idea deleted!", done)
	})
}

func (b *Board) handleReport(a Action, done func(Outcome)) {
	if err := requireText(field{"description", a.Text}); err != nil {
		done(Outcome{Err: err})
		return
	}

	b.async("report", func(ctx context.Context) error {
		_, err := b.api.Report(ctx, a.IdeaID, strings.TrimSpace(a.Text))
		return err
	}, notify(done, "Idea reported successfully."))
}

// handleMine lists the session user's own ideas without touching the board.
func (b *Board) handleMine(a Action, done func(Outcome)) {
	user := b.renderer.UserID
	if user == "" {
		done(Outcome{Err: ErrNoSession})
		return
	}

	var ideas []models.Idea
	b.async("mine", func(ctx context.Context) error {
		var err error
		ideas, err = b.api.ListIdeas(ctx, models.Filter{}.Normalize())
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		mine := []render.Card{}
		for _, idea := range ideas {
			if idea.UserID == user {
				mine = append(mine, b.renderer.Card(idea))
			}
		}
		done(Outcome{Mine: mine})
	})
}

func (b *Board) handleDeleteReport(a Action, done func(Outcome)) {
	b.async("delete_report", func(ctx context.Context) error {
		return b.api.DeleteReport(ctx, a.TargetID)
	}, notify(done, "Report deleted."))
}

func (b *Board) handleApprove(a Action, done func(Outcome)) {
	b.async("approve", func(ctx context.Context) error {
		return b.api.ApproveRequest(ctx, a.TargetID)
	}, notify(done, "Request approved."))
}

func (b *Board) handleReject(a Action, done func(Outcome)) {
	b.async("reject", func(ctx context.Context) error {
		return b.api.RejectRequest(ctx, a.TargetID)
	}, notify(done, "Request rejected."))
}

func (b *Board) handleRequestAccess(a Action, done func(Outcome)) {
	if err := requireText(field{"reason", a.Text}); err != nil {
		done(Outcome{Err: err})
		return
	}

	b.async("request_access", func(ctx context.Context) error {
		_, err := b.api.RequestDeveloperAccess(ctx, strings.TrimSpace(a.Text))
		return err
	}, notify(done, "Developer access requested."))
}

// maxChatLines bounds the transcript kept in the view
const maxChatLines = 20

// handleChat asks the help chat and appends the exchange to the transcript
func (b *Board) handleChat(a Action, done func(Outcome)) {
	message := strings.TrimSpace(a.Text)
	if message == "" {
		done(Outcome{Err: &ValidationError{Field: "message"}})
		return
	}

	var reply string
	b.async("chat", func(ctx context.Context) error {
		var err error
		reply, err = b.api.Chat(ctx, message)
		return err
	}, func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		b.chat = append(b.chat,
			render.ChatLine{From: render.ChatUser, Text: message},
			render.ChatLine{From: render.ChatBot, Text: reply},
		)
		if extra := len(b.chat) - maxChatLines; extra > 0 {
			b.chat = slices.Delete(b.chat, 0, extra)
		}
		done(Outcome{Reply: reply})
	})
}

func notify(done func(Outcome), notice string) func(error) {
	return func(err error) {
		if err != nil {
			done(Outcome{Err: err})
			return
		}
		done(Outcome{Notice: notice})
	}
}

type field struct {
	name  string
	value string
}

func requireText(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}
