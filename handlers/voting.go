// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// Vote handles POST /api/ideas/{id}/vote
//
// Repeating the current direction retracts the vote; the opposite
// direction switches it. The updated idea is returned.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !req.VoteType.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote type")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT 1 FROM idea WHERE id = $1`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var current string
	err = tx.QueryRow(`
		SELECT vote_type FROM idea_vote WHERE idea_id = $1 AND user_id = $2
	`, id, userID).Scan(&current)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`
			INSERT INTO idea_vote (idea_id, user_id, vote_type, voted_at)
			VALUES ($1, $2, $3, $4)
		`, id, userID, string(req.VoteType), now())
	case err != nil:
		// fall through to the error check below
	case models.VoteType(current) == req.VoteType:
		_, err = tx.Exec(`DELETE FROM idea_vote WHERE idea_id = $1 AND user_id = $2`, id, userID)
	default:
		_, err = tx.Exec(`
			UPDATE idea_vote SET vote_type = $1, voted_at = $2
			WHERE idea_id = $3 AND user_id = $4
		`, string(req.VoteType), now(), id, userID)
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	idea, err := loadIdea(tx, id)
	if err != nil {
		slog.Error("failed to reload idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded", "idea_id", id, "user_id", userID, "vote_type", req.VoteType)

	middleware.JSONResponse(w, http.StatusOK, idea)
}
