// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Open connects to a sqlite or postgres database. The matching driver must
// be registered by the caller.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "sqlite", "":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	// sqlite allows a single writer, and each in-memory connection is its own database
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Portable between sqlite and postgres: ids are assigned by the
// application and timestamps are RFC 3339 text.
const schema = `
-- Ideas
CREATE TABLE IF NOT EXISTS idea (
    id BIGINT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_idea_user_id ON idea(user_id);
CREATE INDEX IF NOT EXISTS idx_idea_category ON idea(category);

-- One vote per user per idea
CREATE TABLE IF NOT EXISTS idea_vote (
    idea_id BIGINT NOT NULL,
    user_id TEXT NOT NULL,
    vote_type TEXT NOT NULL CHECK (vote_type IN ('upvote', 'downvote')),
    voted_at TEXT NOT NULL,
    PRIMARY KEY (idea_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_idea_vote_idea_id ON idea_vote(idea_id);

-- Reports
CREATE TABLE IF NOT EXISTS report (
    id BIGINT PRIMARY KEY,
    idea_id BIGINT NOT NULL,
    idea_title TEXT NOT NULL,
    user_id TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_report_idea_id ON report(idea_id);

-- Developer access requests
CREATE TABLE IF NOT EXISTS developer_request (
    id BIGINT PRIMARY KEY,
    user_id TEXT NOT NULL,
    reason TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Account types, absent rows are plain users
CREATE TABLE IF NOT EXISTS account (
    user_id TEXT PRIMARY KEY,
    account_type TEXT NOT NULL DEFAULT 'user' CHECK (account_type IN ('user', 'developer', 'admin'))
);
`
