// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ideaboard/models"
)

const (
	DefaultTruncateAt = 180
	DefaultImage      = "/uploads/default.png"
	Ellipsis          = "…"
)

// DetailImageFallback is used by the detail view when a record has no image
func DetailImageFallback(id models.ID) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/450", id)
}

// Card is one grid entry
type Card struct {
	ID          models.ID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Age         string    `json:"age,omitempty"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	UpActive    bool      `json:"up_active"`
	DownActive  bool      `json:"down_active"`
	Mine        bool      `json:"mine"`
}

// Stats are the aggregate counters shown above the grid
type Stats struct {
	Ideas      int `json:"ideas"`
	Votes      int `json:"votes"`
	Categories int `json:"categories"`
}

type Grid struct {
	Cards []Card `json:"cards"`
	Stats Stats  `json:"stats"`
}

// DetailView is the expanded single-idea projection
type DetailView struct {
	ID          models.ID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Age         string    `json:"age,omitempty"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	UpActive    bool      `json:"up_active"`
	DownActive  bool      `json:"down_active"`
	Mine        bool      `json:"mine"`
	SharePath   string    `json:"share_path"`
}

// View is everything the page shows at one instant
type View struct {
	UserID models.ID     `json:"user_id"`
	Filter models.Filter `json:"filter"`
	Grid   Grid          `json:"grid"`
	Detail *DetailView   `json:"detail,omitempty"`
	Chat   []ChatLine    `json:"chat,omitempty"`
	Notice string        `json:"notice,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Chat speakers
const (
	ChatUser = "user"
	ChatBot  = "bot"
)

// ChatLine is one message of the help chat transcript
type ChatLine struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Renderer projects idea records into cards. It never mutates its input.
type Renderer struct {
	UserID       models.ID
	TruncateAt   int
	DefaultImage string
	Now          func() time.Time
}

func New(userID models.ID) *Renderer {
	return &Renderer{
		UserID:       userID,
		TruncateAt:   DefaultTruncateAt,
		DefaultImage: DefaultImage,
		Now:          time.Now,
	}
}

// Grid renders the full list and its stats
func (r *Renderer) Grid(ideas []models.Idea) Grid {
	cards := make([]Card, len(ideas))
	for i, idea := range ideas {
		cards[i] = r.Card(idea)
	}
	return Grid{Cards: cards, Stats: ComputeStats(ideas)}
}

func (r *Renderer) Card(idea models.Idea) Card {
	image := idea.ImageURL
	if image == "" {
		image = r.DefaultImage
	}
	return Card{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: Truncate(idea.Description, r.TruncateAt),
		Category:    idea.Category,
		ImageURL:    image,
		Age:         r.age(idea.CreatedAt.Time),
		Upvotes:     len(idea.Upvotes),
		Downvotes:   len(idea.Downvotes),
		UpActive:    idea.HasUpvote(r.UserID),
		DownActive:  idea.HasDownvote(r.UserID),
		Mine:        r.UserID != "" && idea.UserID == r.UserID,
	}
}

func (r *Renderer) Detail(idea models.Idea) DetailView {
	image := idea.ImageURL
	if image == "" {
		image = DetailImageFallback(idea.ID)
	}
	return DetailView{
		ID:          idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		Category:    idea.Category,
		ImageURL:    image,
		Age:         r.age(idea.CreatedAt.Time),
		Upvotes:     len(idea.Upvotes),
		Downvotes:   len(idea.Downvotes),
		UpActive:    idea.HasUpvote(r.UserID),
		DownActive:  idea.HasDownvote(r.UserID),
		Mine:        r.UserID != "" && idea.UserID == r.UserID,
		SharePath:   "/ideas/" + idea.ID.String(),
	}
}

func (r *Renderer) age(t time.Time) string {
	if t.IsZero() || r.Now == nil {
		return ""
	}
	return humanize.RelTime(t, r.Now(), "ago", "from now")
}

// ComputeStats counts ideas, votes cast in either direction, and distinct
// categories.
func ComputeStats(ideas []models.Idea) Stats {
	categories := make(map[string]struct{})
	votes := 0
	for _, idea := range ideas {
		votes += len(idea.Upvotes) + len(idea.Downvotes)
		categories[idea.Category] = struct{}{}
	}
	return Stats{
		Ideas:      len(ideas),
		Votes:      votes,
		Categories: len(categories),
	}
}

// Truncate shortens s to n runes, the last being an ellipsis, when s is
// longer than n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + Ellipsis
}
