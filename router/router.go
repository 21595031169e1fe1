// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/rs/cors"

	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/handlers"
	"github.com/danielhkuo/ideaboard/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	ideaHandler := handlers.NewIdeaHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	reportHandler := handlers.NewReportHandler(db, cfg)
	moderationHandler := handlers.NewModerationHandler(db, cfg)
	sessionHandler := handlers.NewSessionHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ideas
	mux.HandleFunc("GET /api/ideas", middleware.WithLogging(ideaHandler.ListIdeas))
	mux.HandleFunc("POST /api/ideas", middleware.WithLogging(ideaHandler.CreateIdea))
	mux.HandleFunc("POST /edit_idea/{id}", middleware.WithLogging(ideaHandler.EditIdea))
	mux.HandleFunc("DELETE /delete_idea/{id}", middleware.WithLogging(ideaHandler.DeleteIdea))

	// Voting
	mux.HandleFunc("POST /api/ideas/{id}/vote", middleware.WithLogging(votingHandler.Vote))

	// Reports
	mux.HandleFunc("POST /api/ideas/{id}/report", middleware.WithLogging(reportHandler.ReportIdea))
	mux.HandleFunc("DELETE /delete_report/{id}", middleware.WithLogging(reportHandler.DeleteReport))

	// Developer access
	mux.HandleFunc("POST /developer_request", middleware.WithLogging(moderationHandler.RequestAccess))
	mux.HandleFunc("POST /approve/{id}", middleware.WithLogging(moderationHandler.Approve))
	mux.HandleFunc("POST /reject/{id}", middleware.WithLogging(moderationHandler.Reject))

	// Help chat
	mux.HandleFunc("POST /chatbot", middleware.WithLogging(chatHandler.Chat))

	// Sessions
	mux.HandleFunc("POST /dev/session", middleware.WithLogging(sessionHandler.IssueSession))

	// Uploaded images
	mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ideaboard API v1"))
	})

	var handler http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		handler = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.SessionSalt).Middleware(handler)
	}

	// Only the configured board origins may send the session cookie along
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Origin", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(handler)
}
