// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/middleware"
	"github.com/danielhkuo/ideaboard/models"
)

// chatFallback answers messages no rule or idea title matched
const chatFallback = "I can help with submitting, voting, reporting and editing ideas, " +
	"categories, or developer access. You can also ask about any idea by its title."

// minTitleMatch keeps one and two letter titles from matching every message
const minTitleMatch = 3

type chatRule struct {
	keywords []string
	answer   func(q querier) (string, error)
}

func say(reply string) func(querier) (string, error) {
	return func(querier) (string, error) { return reply, nil }
}

// chatRules are tried in order; the first rule with a matching keyword answers
var chatRules = []chatRule{
	{[]string{"how to submit", "submit idea", "submission", "post idea", "new idea"},
		say("Fill in the idea form with a title and description. Category and image are optional.")},
	{[]string{"report idea", "report", "flag", "problem with idea"},
		say("Open the idea and use Report. Say briefly what is wrong with it.")},
	{[]string{"edit idea", "update idea", "change idea", "edit"},
		say("Open one of your own ideas and use Edit to change its title, description, category or image.")},
	{[]string{"vote", "upvote", "downvote", "like", "dislike"},
		say("Use the up and down arrows on a card. Voting the same way again takes your vote back.")},
	{[]string{"categories", "category", "idea type"}, listCategories},
	{[]string{"developer request", "become developer", "developer access", "apply developer"},
		say("Send a developer access request with a short reason. An admin reviews it and promotes your account.")},
	{[]string{"moderation", "admin", "manage reports"},
		say("Developers and admins can delete reports and reported ideas. Admins also approve developer requests.")},
	{[]string{"chatbot", "help", "support", "assistant", "guide"}, say(chatFallback)},
	{[]string{"hello", "hi", "hey", "greetings"},
		say("Hello! Ask me about ideas, voting or your account.")},
	{[]string{"thanks", "thank you", "thx"}, say("You're welcome!")},
	{[]string{"bye", "goodbye", "see you"}, say("Goodbye! Come back any time.")},
}

type ChatHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewChatHandler(db *sql.DB, cfg cliparse.Config) *ChatHandler {
	return &ChatHandler{db: db, cfg: cfg}
}

// Chat handles POST /chatbot. Messages naming an idea title are answered
// from that idea; everything else goes through the keyword rules.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	msg := normalizeChat(req.Message)
	if msg == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.reply(msg)
	if err != nil {
		slog.Error("failed to answer chat message", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (h *ChatHandler) reply(msg string) (string, error) {
	facts, found, err := mentionedIdea(h.db, msg)
	if err != nil {
		return "", err
	}
	if found {
		return facts.describe(msg), nil
	}

	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if containsPhrase(msg, kw) {
				return rule.answer(h.db)
			}
		}
	}
	return chatFallback, nil
}

// ideaFacts is what the chatbot can tell about one idea
type ideaFacts struct {
	Title       string
	Description string
	Category    string
	Upvotes     int
	Downvotes   int
	Reports     int
}

func (f ideaFacts) describe(msg string) string {
	switch {
	case containsAny(msg, "description", "about", "details"):
		return fmt.Sprintf("%s - Description: %s", f.Title, f.Description)
	case containsAny(msg, "category", "type"):
		return fmt.Sprintf("%s - Category: %s", f.Title, orNone(f.Category))
	case containsAny(msg, "downvote", "downvotes", "dislike", "dislikes"):
		return fmt.Sprintf("%s - Downvotes: %d", f.Title, f.Downvotes)
	case containsAny(msg, "upvote", "upvotes", "like", "likes", "votes"):
		return fmt.Sprintf("%s - Upvotes: %d", f.Title, f.Upvotes)
	case containsAny(msg, "report", "reports", "problem"):
		return fmt.Sprintf("%s - Reports: %d", f.Title, f.Reports)
	default:
		return fmt.Sprintf("%s - Category: %s\nDescription: %s\nUpvotes: %d, Downvotes: %d, Reports: %d",
			f.Title, orNone(f.Category), f.Description, f.Upvotes, f.Downvotes, f.Reports)
	}
}

// mentionedIdea finds the idea with the longest title contained in msg
func mentionedIdea(q querier, msg string) (ideaFacts, bool, error) {
	rows, err := q.Query(`SELECT id, title FROM idea ORDER BY id DESC`)
	if err != nil {
		return ideaFacts{}, false, fmt.Errorf("query titles: %w", err)
	}

	var bestID int64
	bestLen := 0
	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			rows.Close()
			return ideaFacts{}, false, fmt.Errorf("scan title: %w", err)
		}
		t := normalizeChat(title)
		if len(t) >= minTitleMatch && len(t) > bestLen && containsPhrase(msg, t) {
			bestID, bestLen = id, len(t)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return ideaFacts{}, false, fmt.Errorf("read titles: %w", err)
	}
	if bestLen == 0 {
		return ideaFacts{}, false, nil
	}

	idea, err := loadIdea(q, bestID)
	if err != nil {
		return ideaFacts{}, false, err
	}
	facts := ideaFacts{
		Title:       idea.Title,
		Description: idea.Description,
		Category:    idea.Category,
		Upvotes:     len(idea.Upvotes),
		Downvotes:   len(idea.Downvotes),
	}
	if err := q.QueryRow(`SELECT COUNT(*) FROM report WHERE idea_id = $1`, bestID).Scan(&facts.Reports); err != nil {
		return ideaFacts{}, false, fmt.Errorf("count reports: %w", err)
	}
	return facts, true, nil
}

func listCategories(q querier) (string, error) {
	rows, err := q.Query(`SELECT DISTINCT category FROM idea WHERE category <> '' ORDER BY category`)
	if err != nil {
		return "", fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return "", fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("read categories: %w", err)
	}
	if len(categories) == 0 {
		return "No categories yet. Give your idea one when you submit it.", nil
	}
	return "Ideas are filed under: " + strings.Join(categories, ", ") + ".", nil
}

// normalizeChat lowercases s and collapses everything that is not a letter
// or digit into single spaces
func normalizeChat(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}

// containsPhrase matches whole words only, so "hi" does not match "this"
func containsPhrase(msg, phrase string) bool {
	return strings.Contains(" "+msg+" ", " "+phrase+" ")
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if containsPhrase(msg, w) {
			return true
		}
	}
	return false
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
