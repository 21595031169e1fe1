package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ideaboard/auth"
	"github.com/danielhkuo/ideaboard/models"
	"github.com/danielhkuo/ideaboard/testutil"
)

func TestIssueSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig(t)
	handler := NewSessionHandler(db, cfg)

	tests := []struct {
		name   string
		body   interface{}
		userID models.ID
	}{
		{name: "named user", body: models.SessionRequest{UserID: "alice"}, userID: "alice"},
		{name: "numeric user id", body: map[string]int{"user_id": 42}, userID: "42"},
		{name: "generated user", body: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.IssueSession(w, testutil.MakeRequest("POST", "/dev/session", tt.body, nil))

			testutil.AssertStatus(t, w, http.StatusOK)

			var cookie *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == models.SessionCookieName {
					cookie = c
				}
			}

			var resp models.SessionResponse
			testutil.AssertJSON(t, w, &resp)

			if tt.userID != "" && resp.UserID != tt.userID {
				t.Errorf("Expected user %s, got %s", tt.userID, resp.UserID)
			}
			if resp.UserID == "" {
				t.Fatal("Expected a user id")
			}

			user, err := auth.ValidateSessionToken(resp.Token, cfg.SessionSalt)
			if err != nil {
				t.Fatalf("Issued token does not validate: %v", err)
			}
			if user != string(resp.UserID) {
				t.Errorf("Token names %s, expected %s", user, resp.UserID)
			}
			if cookie == nil || cookie.Value != resp.Token {
				t.Error("Expected the session cookie to carry the token")
			}
		})
	}
}
