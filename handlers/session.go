// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ideaboard/auth"
	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// IssueSession handles POST /dev/session. It mints a signed session token
// for the given user id, generating one when the body names none.
func (h *SessionHandler) IssueSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userID := strings.TrimSpace(string(req.UserID))
	if userID == "" {
		generated, err := auth.GenerateID(8)
		if err != nil {
			slog.Error("failed to generate user id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
		userID = generated
	}

	token := auth.GenerateSessionToken(userID, h.cfg.SessionSalt)

	http.SetCookie(w, &http.Cookie{
		Name:     models.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("session issued", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		UserID: models.ID(userID),
		Token:  token,
	})
}
