// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

type ReportHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewReportHandler(db *sql.DB, cfg cliparse.Config) *ReportHandler {
	return &ReportHandler{db: db, cfg: cfg}
}

// ReportIdea handles POST /api/ideas/{id}/report
func (h *ReportHandler) ReportIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}

	var req models.ReportRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var title string
	err = tx.QueryRow(`SELECT title FROM idea WHERE id = $1`, id).Scan(&title)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	reportID, err := nextID(tx, "report")
	if err != nil {
		slog.Error("failed to allocate report id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	created := now()
	_, err = tx.Exec(`
		INSERT INTO report (id, idea_id, idea_title, user_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reportID, id, title, userID, description, created)
	if err != nil {
		slog.Error("failed to insert report", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to report idea")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit report", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("idea reported", "idea_id", id, "report_id", reportID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.Report{
		ID:          formatID(reportID),
		IdeaID:      formatID(id),
		IdeaTitle:   title,
		UserID:      models.ID(userID),
		Description: description,
		CreatedAt:   parseTime(created),
	})
}

// DeleteReport handles DELETE /delete_report/{id} (developers and admins)
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}
	if !requireAccount(w, h.db, userID, models.AccountDeveloper, models.AccountAdmin) {
		return
	}

	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Report not found")
		return
	}

	result, err := h.db.Exec(`DELETE FROM report WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete report", "error", err, "report_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Report not found")
		return
	}

	slog.Info("report deleted", "report_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Status: "success"})
}
