// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ideaboard/auth"
	"github.com/danielhkuo/ideaboard/cliparse"
	"github.com/danielhkuo/ideaboard/db"
	"github.com/danielhkuo/ideaboard/models"
	_ "modernc.org/sqlite"
)

// TestDBURL opens a private in-memory sqlite database
const TestDBURL = ":memory:"

// TestSalt signs the session cookies of test users
const TestSalt = "test-session-salt"

// TestOrigin is the only browser origin the test API accepts credentials from
const TestOrigin = "http://localhost:3319"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration writing uploads
// into a per-test directory
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   "sqlite",
		SessionSalt:    TestSalt,
		UploadDir:      t.TempDir(),
		RateLimitBurst: 10,
		AllowedOrigins: []string{TestOrigin},
		LogFormat:      "text",
	}
}

// CreateTestIdea inserts an idea owned by userID and returns its id
func CreateTestIdea(t *testing.T, conn *sql.DB, userID, title, category string) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM idea`).Scan(&id); err != nil {
		t.Fatalf("Failed to allocate idea id: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO idea (id, user_id, title, description, category, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, '', $6)
	`, id, userID, title, "About "+title, category, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test idea: %v", err)
	}

	return id
}

// CreateTestVote records userID's vote on an idea
func CreateTestVote(t *testing.T, conn *sql.DB, ideaID int64, userID string, vote models.VoteType) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO idea_vote (idea_id, user_id, vote_type, voted_at)
		VALUES ($1, $2, $3, $4)
	`, ideaID, userID, string(vote), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CreateTestReport files a report against an idea and returns its id
func CreateTestReport(t *testing.T, conn *sql.DB, ideaID int64, userID string) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM report`).Scan(&id); err != nil {
		t.Fatalf("Failed to allocate report id: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO report (id, idea_id, idea_title, user_id, description, created_at)
		VALUES ($1, $2, 'Reported', $3, 'spam', $4)
	`, id, ideaID, userID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test report: %v", err)
	}

	return id
}

// CreateTestRequest files a developer access request and returns its id
func CreateTestRequest(t *testing.T, conn *sql.DB, userID string) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM developer_request`).Scan(&id); err != nil {
		t.Fatalf("Failed to allocate request id: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO developer_request (id, user_id, reason, created_at)
		VALUES ($1, $2, 'I build things', $3)
	`, id, userID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create test request: %v", err)
	}

	return id
}

// SetAccountType grants userID a developer or admin account
func SetAccountType(t *testing.T, conn *sql.DB, userID, accountType string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO account (user_id, account_type) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET account_type = excluded.account_type
	`, userID, accountType)
	if err != nil {
		t.Fatalf("Failed to set account type: %v", err)
	}
}

// SessionCookie returns a signed session cookie for userID
func SessionCookie(userID string) *http.Cookie {
	return &http.Cookie{
		Name:  models.SessionCookieName,
		Value: auth.GenerateSessionToken(userID, TestSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
