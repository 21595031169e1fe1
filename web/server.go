// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/ideaboard/apiclient"
	"github.com/danielhkuo/ideaboard/board"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/render"
)

const maxFormBytes = 10 << 20

// Board is the part of *board.Board the server drives
type Board interface {
	Do(ctx context.Context, a board.Action) (board.Outcome, error)
	View() render.View
}

type Server struct {
	board Board
}

func New(b Board) *Server {
	return &Server{board: b}
}

// outcomeResponse is the JSON form of a settled action
type outcomeResponse struct {
	View   render.View   `json:"view"`
	Notice string        `json:"notice,omitempty"`
	Mine   []render.Card `json:"mine,omitempty"`
	Reply  string        `json:"reply,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", s.page)
	r.Get("/view", s.view)
	r.Get("/mine", s.mine)

	r.Post("/filter", s.filter)
	r.Post("/ideas", s.submit)
	r.Post("/ideas/{id}/vote", s.vote)
	r.Post("/ideas/{id}/open", s.open)
	r.Post("/detail/close", s.close)
	r.Post("/ideas/{id}/edit", s.edit)
	r.Post("/ideas/{id}/delete", s.delete)
	r.Post("/ideas/{id}/report", s.report)
	r.Post("/reports/{id}/delete", s.deleteReport)
	r.Post("/requests/{id}/approve", s.approve)
	r.Post("/requests/{id}/reject", s.reject)
	r.Post("/developer-request", s.requestAccess)
	r.Post("/chat", s.chat)

	return r
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, s.board.View()); err != nil {
		slog.Error("failed to render page", "error", err)
	}
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, s.board.View())
}

func (s *Server) mine(w http.ResponseWriter, r *http.Request) {
	o, err := s.board.Do(r.Context(), board.Action{Kind: board.KindMine})
	if err != nil {
		s.fail(w, err)
		return
	}
	if o.Mine == nil {
		o.Mine = []render.Card{}
	}
	middleware.JSONResponse(w, http.StatusOK, o.Mine)
}

// filter applies a new query. JSON callers go through the debounce window;
// a plain form post loads at once so the redirected page shows the
// filtered list.
func (s *Server) filter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}
	a := board.Action{Kind: board.KindFilter, Filter: models.Filter{
		Search:   strings.TrimSpace(r.FormValue("search")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Sort:     r.FormValue("sort"),
	}}
	if !wantsJSON(r) {
		a.Kind = board.KindApplyFilter
	}
	s.act(w, r, a)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}
	image, err := readUpload(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image")
		return
	}
	s.act(w, r, board.Action{Kind: board.KindSubmit, Idea: models.NewIdea{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		Image:       image,
	}})
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{
		Kind:   board.KindVote,
		IdeaID: ideaID(r),
		Vote:   models.VoteType(r.FormValue("voteType")),
	})
}

func (s *Server) open(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindOpen, IdeaID: ideaID(r)})
}

func (s *Server) close(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindClose})
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}
	image, err := readUpload(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image")
		return
	}
	s.act(w, r, board.Action{Kind: board.KindEdit, IdeaID: ideaID(r), Edit: models.IdeaEdit{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Image:       image,
	}})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindDelete, IdeaID: ideaID(r)})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindReport, IdeaID: ideaID(r), Text: r.FormValue("description")})
}

func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindDeleteReport, TargetID: ideaID(r)})
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindApprove, TargetID: ideaID(r)})
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindReject, TargetID: ideaID(r)})
}

func (s *Server) requestAccess(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindRequestAccess, Text: r.FormValue("reason")})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, board.Action{Kind: board.KindChat, Text: r.FormValue("message")})
}

// act runs a on the board. Browsers are sent back to the page, which shows
// the notice or error banner; JSON callers get the outcome.
func (s *Server) act(w http.ResponseWriter, r *http.Request, a board.Action) {
	o, err := s.board.Do(r.Context(), a)
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, outcomeResponse{View: o.View, Notice: o.Notice, Mine: o.Mine, Reply: o.Reply})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	middleware.JSONResponse(w, statusFor(err), outcomeResponse{View: s.board.View(), Error: err.Error()})
}

// statusFor maps an action error to the status the JSON caller sees
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, board.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrNotLoaded):
		return http.StatusNotFound
	case errors.Is(err, board.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, board.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case apiclient.IsNetwork(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func ideaID(r *http.Request) models.ID {
	return models.ID(chi.URLParam(r, "id"))
}

// readUpload returns the "image" file part, or nil when none was sent
func readUpload(r *http.Request) (*models.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image part: %w", err)
	}
	defer file.Close()

	if header.Filename == "" || header.Size == 0 {
		return nil, nil
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read image part: %w", err)
	}
	return &models.Upload{Filename: header.Filename, Data: data}, nil
}
