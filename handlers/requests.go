// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

type ModerationHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewModerationHandler(db *sql.DB, cfg cliparse.Config) *ModerationHandler {
	return &ModerationHandler{db: db, cfg: cfg}
}

// RequestAccess handles POST /developer_request
func (h *ModerationHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	reason, err := accessReason(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if reason == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reason is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	id, err := nextID(tx, "developer_request")
	if err != nil {
		slog.Error("failed to allocate request id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	created := now()
	_, err = tx.Exec(`
		INSERT INTO developer_request (id, user_id, reason, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, userID, reason, created)
	if err != nil {
		slog.Error("failed to insert developer request", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit request")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit developer request", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("developer access requested", "request_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.DeveloperRequest{
		ID:        formatID(id),
		UserID:    models.ID(userID),
		Reason:    reason,
		CreatedAt: parseTime(created),
	})
}

// accessReason reads the "reason" form field. JSON bodies are accepted too.
func accessReason(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req models.DeveloperAccessRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return "", err
		}
		return strings.TrimSpace(req.Reason), nil
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return "", err
	}
	return strings.TrimSpace(r.FormValue("reason")), nil
}

// Approve handles POST /approve/{id}: the requester becomes a developer
// and the request is removed.
func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, id, ok := h.adminRequest(w, r)
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var requester string
	err = tx.QueryRow(`SELECT user_id FROM developer_request WHERE id = $1`, id).Scan(&requester)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Request not found")
		return
	}
	if err != nil {
		slog.Error("failed to query developer request", "error", err, "request_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO account (user_id, account_type) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET account_type = excluded.account_type
	`, requester, models.AccountDeveloper)
	if err != nil {
		slog.Error("failed to promote account", "error", err, "user_id", requester)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve request")
		return
	}

	if _, err := tx.Exec(`DELETE FROM developer_request WHERE id = $1`, id); err != nil {
		slog.Error("failed to delete developer request", "error", err, "request_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve request")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("developer request approved", "request_id", id, "user_id", requester, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "success"})
}

// Reject handles POST /reject/{id}
func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, id, ok := h.adminRequest(w, r)
	if !ok {
		return
	}

	result, err := h.db.Exec(`DELETE FROM developer_request WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete developer request", "error", err, "request_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Request not found")
		return
	}

	slog.Info("developer request rejected", "request_id", id, "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "success"})
}

func (h *ModerationHandler) adminRequest(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return "", 0, false
	}
	if !requireAccount(w, h.db, userID, models.AccountAdmin) {
		return "", 0, false
	}
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Request not found")
		return "", 0, false
	}
	return userID, id, true
}
