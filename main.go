package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp/v3"

	"github.com/danielhkuo/ideaboard/apiclient"
	"github.com/danielhkuo/ideaboard/auth"
	"github.com/danielhkuo/ideaboard/board"
	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/logging"
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/web"
)

func main() {
	var err error

	// A missing .env is fine, the environment may already be set
	envErr := godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseBoardFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.LogFormat, os.Stderr); err != nil {
		slog.Error("Error configuring logging", "error", err)
		os.Exit(1)
	}
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	userID := cfg.UserID
	if userID == "" {
		userID = auth.SessionUserID(cfg.SessionToken)
	}

	client := apiclient.New(cfg.APIURL, apiclient.WithSessionToken(cfg.SessionToken))
	b := board.New(client, board.Options{
		UserID:       models.ID(userID),
		TruncateAt:   cfg.TruncateAt,
		DefaultImage: cfg.DefaultImage,
		Debounce:     cfg.Debounce,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	// Initial load; a failure shows as the page's error banner
	if _, err := b.Do(ctx, board.Action{Kind: board.KindLoad}); err != nil {
		slog.Warn("initial load failed", "error", err, "api", cfg.APIURL)
	}

	if cfg.Dump {
		pp.Println(b.View())
		return
	}

	// Create server
	server := http.Server{
		Handler: web.New(b).Routes(),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
		cancel()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "api", cfg.APIURL, "user_id", userID)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
	b.Wait()
}
