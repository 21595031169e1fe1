// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"

	_ "modernc.org/sqlite"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"idea", "idea_vote", "report", "developer_request", "account"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestCreateSchema_VoteTypeCheck(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	_, err = conn.Exec(`INSERT INTO idea_vote (idea_id, user_id, vote_type, voted_at) VALUES (1, 'u', 'sideways', '')`)
	if err == nil {
		t.Error("expected CHECK constraint to reject unknown vote type")
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
