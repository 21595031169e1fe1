// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/ideaboard/auth"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

var errNotFound = errors.New("not found")

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) models.Timestamp {
	return models.ParseTimestamp(s)
}

func formatID(id int64) models.ID {
	return models.ID(strconv.FormatInt(id, 10))
}

// pathID reads a numeric {id} path value
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// nextID allocates max+1 for table. Callers hold a transaction.
func nextID(q querier, table string) (int64, error) {
	var id int64
	err := q.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM ` + table).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", table, err)
	}
	return id, nil
}

const ideaColumns = `id, user_id, title, description, category, image_url, created_at`

func scanIdea(row interface{ Scan(...any) error }) (models.Idea, error) {
	var (
		id        int64
		userID    string
		createdAt string
		idea      models.Idea
	)
	err := row.Scan(&id, &userID, &idea.Title, &idea.Description, &idea.Category, &idea.ImageURL, &createdAt)
	if err != nil {
		return models.Idea{}, err
	}
	idea.ID = formatID(id)
	idea.UserID = models.ID(userID)
	idea.CreatedAt = parseTime(createdAt)
	idea.Upvotes = []models.ID{}
	idea.Downvotes = []models.ID{}
	return idea, nil
}

// loadIdea returns one idea with its vote sets
func loadIdea(q querier, id int64) (models.Idea, error) {
	idea, err := scanIdea(q.QueryRow(`SELECT `+ideaColumns+` FROM idea WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return models.Idea{}, errNotFound
	}
	if err != nil {
		return models.Idea{}, fmt.Errorf("query idea: %w", err)
	}

	ideas := []models.Idea{idea}
	if err := attachVotes(q, ideas, &id); err != nil {
		return models.Idea{}, err
	}
	return ideas[0], nil
}

// attachVotes fills the vote sets of ideas in place, optionally restricted
// to a single idea id
func attachVotes(q querier, ideas []models.Idea, only *int64) error {
	query := `SELECT idea_id, user_id, vote_type FROM idea_vote`
	var args []any
	if only != nil {
		query += ` WHERE idea_id = $1`
		args = append(args, *only)
	}
	query += ` ORDER BY voted_at, user_id`

	rows, err := q.Query(query, args...)
	if err != nil {
		return fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	index := make(map[models.ID]int, len(ideas))
	for i, idea := range ideas {
		index[idea.ID] = i
	}

	for rows.Next() {
		var ideaID int64
		var userID, voteType string
		if err := rows.Scan(&ideaID, &userID, &voteType); err != nil {
			return fmt.Errorf("scan vote: %w", err)
		}
		i, ok := index[formatID(ideaID)]
		if !ok {
			continue
		}
		switch models.VoteType(voteType) {
		case models.VoteUp:
			ideas[i].Upvotes = append(ideas[i].Upvotes, models.ID(userID))
		case models.VoteDown:
			ideas[i].Downvotes = append(ideas[i].Downvotes, models.ID(userID))
		}
	}
	return rows.Err()
}

// sortIdeas orders a newest-first list. Ties keep newest first.
func sortIdeas(ideas []models.Idea, order string) {
	switch order {
	case models.SortPopular:
		sort.SliceStable(ideas, func(i, j int) bool {
			return ideas[i].Score() > ideas[j].Score()
		})
	case models.SortTrending:
		sort.SliceStable(ideas, func(i, j int) bool {
			return len(ideas[i].Upvotes) > len(ideas[j].Upvotes)
		})
	}
}

// currentUser returns the user named by a valid session cookie
func currentUser(r *http.Request, salt string) (string, bool) {
	cookie, err := r.Cookie(models.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	userID, err := auth.ValidateSessionToken(cookie.Value, salt)
	if err != nil {
		return "", false
	}
	return userID, true
}

// requireUser writes 401 and returns false when there is no valid session
func requireUser(w http.ResponseWriter, r *http.Request, salt string) (string, bool) {
	userID, ok := currentUser(r, salt)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return "", false
	}
	return userID, true
}

// accountType looks up the user's account type, defaulting to a plain user
func accountType(q querier, userID string) (string, error) {
	var t string
	err := q.QueryRow(`SELECT account_type FROM account WHERE user_id = $1`, userID).Scan(&t)
	if err == sql.ErrNoRows {
		return models.AccountUser, nil
	}
	if err != nil {
		return "", fmt.Errorf("query account: %w", err)
	}
	return t, nil
}

// requireAccount writes 403 unless the user holds one of the allowed types
func requireAccount(w http.ResponseWriter, q querier, userID string, allowed ...string) bool {
	t, err := accountType(q, userID)
	if err != nil {
		slog.Error("failed to query account", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(t, a) {
			return true
		}
	}
	middleware.ErrorResponse(w, http.StatusForbidden, "Access denied")
	return false
}
