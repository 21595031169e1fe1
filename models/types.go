package models

import (
	"slices"
)

// Vote directions
const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Sort orders understood by GET /api/ideas
const (
	SortNewest   = "newest"
	SortPopular  = "popular"
	SortTrending = "trending"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

// Account types
const (
	AccountUser      = "user"
	AccountDeveloper = "developer"
	AccountAdmin     = "admin"
)

// SessionCookieName carries the session token on every API request
const SessionCookieName = "session"

type VoteType string

// Valid reports whether v is one of the two vote directions
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Request types

type VoteRequest struct {
	VoteType VoteType `json:"voteType"`
}

type ReportRequest struct {
	Description string `json:"description"`
}

type DeveloperAccessRequest struct {
	Reason string `json:"reason"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type SessionRequest struct {
	UserID ID `json:"user_id"`
}

// Upload is an image attached to a create or edit form
type Upload struct {
	Filename string
	Data     []byte
}

// NewIdea is the multipart body of POST /api/ideas
type NewIdea struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
	Image       *Upload
}

// IdeaEdit is the multipart body of POST /edit_idea/{id}
type IdeaEdit struct {
	Title       string
	Description string
	Category    string
	Image       *Upload
}

// Filter holds the list query parameters
type Filter struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// Normalize fills in the defaults for empty fields
func (f Filter) Normalize() Filter {
	if f.Category == "" {
		f.Category = CategoryAll
	}
	switch f.Sort {
	case SortNewest, SortPopular, SortTrending:
	default:
		f.Sort = SortNewest
	}
	return f
}

// Response types

type EditResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"image_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type SessionResponse struct {
	UserID ID     `json:"user_id"`
	Token  string `json:"token"`
}

// Domain types

// Idea is the authoritative record returned by the ideas API
type Idea struct {
	ID          ID        `json:"id"`
	UserID      ID        `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   Timestamp `json:"created_at"`
	Upvotes     []ID      `json:"upvotes"`
	Downvotes   []ID      `json:"downvotes"`
}

// HasUpvote reports whether user is in the upvote set
func (i Idea) HasUpvote(user ID) bool {
	return user != "" && slices.Contains(i.Upvotes, user)
}

// HasDownvote reports whether user is in the downvote set
func (i Idea) HasDownvote(user ID) bool {
	return user != "" && slices.Contains(i.Downvotes, user)
}

// Score is upvotes minus downvotes
func (i Idea) Score() int {
	return len(i.Upvotes) - len(i.Downvotes)
}

type Report struct {
	ID          ID        `json:"id"`
	IdeaID      ID        `json:"idea_id"`
	IdeaTitle   string    `json:"idea_title"`
	UserID      ID        `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"createdAt"`
}

type DeveloperRequest struct {
	ID        ID        `json:"id"`
	UserID    ID        `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt Timestamp `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
