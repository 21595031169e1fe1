// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

const maxUploadBytes = 10 << 20

var errUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type IdeaHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewIdeaHandler(db *sql.DB, cfg cliparse.Config) *IdeaHandler {
	return &IdeaHandler{db: db, cfg: cfg}
}

// ListIdeas handles GET /api/ideas?search=&category=&sort=
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.TrimSpace(q.Get("search"))
	category := strings.TrimSpace(q.Get("category"))

	query := `SELECT ` + ideaColumns + ` FROM idea`
	var conds []string
	var args []any
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conds = append(conds, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+2))
		args = append(args, pattern, pattern)
	}
	if category != "" && !strings.EqualFold(category, models.CategoryAll) {
		conds = append(conds, fmt.Sprintf("LOWER(category) = $%d", len(args)+1))
		args = append(args, strings.ToLower(category))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ideas := []models.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			slog.Error("failed to scan idea", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	rows.Close()

	if err := attachVotes(h.db, ideas, nil); err != nil {
		slog.Error("failed to load votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	sortIdeas(ideas, models.Filter{Sort: q.Get("sort")}.Normalize().Sort)

	middleware.JSONResponse(w, http.StatusOK, ideas)
}

// CreateIdea handles POST /api/ideas (multipart)
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and description are required")
		return
	}

	imageURL, err := h.saveUpload(r)
	if errors.Is(err, errUnsupportedImage) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unsupported image type")
		return
	}
	if err != nil {
		slog.Error("failed to save upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	if imageURL == "" {
		imageURL = strings.TrimSpace(r.FormValue("image_url"))
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	id, err := nextID(tx, "idea")
	if err != nil {
		slog.Error("failed to allocate idea id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO idea (id, user_id, title, description, category, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, userID, title, description, strings.TrimSpace(r.FormValue("category")), imageURL, now())
	if err != nil {
		slog.Error("failed to insert idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create idea")
		return
	}

	idea, err := loadIdea(tx, id)
	if err != nil {
		slog.Error("failed to reload idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("idea created", "idea_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, idea)
}

// EditIdea handles POST /edit_idea/{id} (multipart, owner only)
func (h *IdeaHandler) EditIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r, h.cfg.SessionSalt)
	if !ok {
		middleware.JSONResponse(w, http.StatusUnauthorized, models.EditResponse{Error: "Login required"})
		return
	}

	id, ok := pathID(r)
	if !ok {
		middleware.JSONResponse(w, http.StatusNotFound, models.EditResponse{Error: "Idea not found or permission denied"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.JSONResponse(w, http.StatusBadRequest, models.EditResponse{Error: "Invalid form"})
		return
	}

	var owner, category, imageURL string
	err := h.db.QueryRow(`SELECT user_id, category, image_url FROM idea WHERE id = $1`, id).
		Scan(&owner, &category, &imageURL)
	if err == sql.ErrNoRows || (err == nil && owner != userID) {
		middleware.JSONResponse(w, http.StatusNotFound, models.EditResponse{Error: "Idea not found or permission denied"})
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err, "idea_id", id)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.EditResponse{Error: "Database error"})
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" || description == "" {
		middleware.JSONResponse(w, http.StatusBadRequest, models.EditResponse{Error: "Title and description cannot be empty"})
		return
	}
	if c := strings.TrimSpace(r.FormValue("category")); c != "" {
		category = c
	}

	uploaded, err := h.saveUpload(r)
	if errors.Is(err, errUnsupportedImage) {
		middleware.JSONResponse(w, http.StatusBadRequest, models.EditResponse{Error: "Unsupported image type"})
		return
	}
	if err != nil {
		slog.Error("failed to save upload", "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.EditResponse{Error: "Failed to save image"})
		return
	}
	if uploaded != "" {
		imageURL = uploaded
	}

	_, err = h.db.Exec(`
		UPDATE idea SET title = $1, description = $2, category = $3, image_url = $4
		WHERE id = $5
	`, title, description, category, imageURL, id)
	if err != nil {
		slog.Error("failed to update idea", "error", err, "idea_id", id)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.EditResponse{Error: "Failed to update idea"})
		return
	}

	slog.Info("idea edited", "idea_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.EditResponse{Success: true, ImageURL: imageURL})
}

// DeleteIdea handles DELETE /delete_idea/{id}. Owners, developers and
// admins may delete; votes and reports go with the idea.
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.cfg.SessionSalt)
	if !ok {
		return
	}

	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}

	var owner string
	err := h.db.QueryRow(`SELECT user_id FROM idea WHERE id = $1`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err, "idea_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if owner != userID && !requireAccount(w, h.db, userID, models.AccountDeveloper, models.AccountAdmin) {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM idea_vote WHERE idea_id = $1`,
		`DELETE FROM report WHERE idea_id = $1`,
		`DELETE FROM idea WHERE id = $1`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			slog.Error("failed to delete idea", "error", err, "idea_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete idea")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit delete", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("idea deleted", "idea_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Success: true, Message: "Idea removed"})
}

// saveUpload stores the "image" file part, if any, and returns its URL
func (h *IdeaHandler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read image part: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !imageExtensions[ext] {
		return "", errUnsupportedImage
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate image name: %w", err)
	}
	name := "idea-" + id + ext

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(h.cfg.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/images/" + name, nil
}
