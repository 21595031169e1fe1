// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ideaboard/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithSessionToken("u1.sig"))
}

func TestListIdeas_SendsFilterAndSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ideas", r.URL.Path)
		assert.Equal(t, "cats", r.URL.Query().Get("search"))
		assert.Equal(t, models.CategoryAll, r.URL.Query().Get("category"))
		assert.Equal(t, models.SortPopular, r.URL.Query().Get("sort"))

		cookie, err := r.Cookie(models.SessionCookieName)
		require.NoError(t, err)
		assert.Equal(t, "u1.sig", cookie.Value)

		w.Write([]byte(`[{"id":1,"user_id":2,"title":"a","upvotes":[2],"downvotes":[]}]`))
	})

	ideas, err := c.ListIdeas(context.Background(), models.Filter{Search: "cats", Sort: models.SortPopular})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, models.ID("1"), ideas[0].ID)
	assert.True(t, ideas[0].HasUpvote("2"))
}

func TestVote_ReturnsUpdatedRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ideas/5/vote", r.URL.Path)

		var req models.VoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.VoteDown, req.VoteType)

		w.Write([]byte(`{"id":5,"upvotes":[],"downvotes":["u1"]}`))
	})

	rec, err := c.Vote(context.Background(), "5", models.VoteDown)
	require.NoError(t, err)
	assert.True(t, rec.HasDownvote("u1"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error envelope", http.StatusUnauthorized, `{"error":"Login required"}`, "Login required"},
		{"message only", http.StatusBadRequest, `{"message":"bad vote"}`, "bad vote"},
		{"plain text", http.StatusForbidden, "Access denied\n", "Access denied"},
		{"empty body", http.StatusNotFound, "", "Not Found"},
		{"html body", http.StatusInternalServerError, "<html>oops</html>", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Vote(context.Background(), "1", models.VoteUp)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.False(t, IsNetwork(err))
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.ListIdeas(context.Background(), models.Filter{})
	require.Error(t, err)
	assert.True(t, IsNetwork(err))

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	assert.Contains(t, ne.Op, "GET /api/ideas")
}

func TestCreateIdea_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Dark mode", r.FormValue("title"))
		assert.Equal(t, "please", r.FormValue("description"))
		assert.Equal(t, "ux", r.FormValue("category"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "shot.png", hdr.Filename)
		assert.Equal(t, []byte("png"), data)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9,"title":"Dark mode","category":"ux"}`))
	})

	rec, err := c.CreateIdea(context.Background(), models.NewIdea{
		Title:       "Dark mode",
		Description: "please",
		Category:    "ux",
		Image:       &models.Upload{Filename: "shot.png", Data: []byte("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("9"), rec.ID)
}

func TestEditIdea_SuccessFalse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/edit_idea/3", r.URL.Path)
		w.Write([]byte(`{"success":false,"error":"Idea not found or permission denied"}`))
	})

	_, err := c.EditIdea(context.Background(), "3", models.IdeaEdit{Title: "a", Description: "b"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Idea not found or permission denied", apiErr.Message)
}

func TestEditIdea_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"image_url":"/images/x.png"}`))
	})

	resp, err := c.EditIdea(context.Background(), "3", models.IdeaEdit{Title: "a", Description: "b"})
	require.NoError(t, err)
	assert.Equal(t, "/images/x.png", resp.ImageURL)
}

func TestModerationCalls(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete && r.URL.Path == "/delete_idea/4" {
			w.Write([]byte(`{"success":true,"message":"Idea removed"}`))
			return
		}
		w.Write([]byte(`{"status":"success"}`))
	})

	ctx := context.Background()
	require.NoError(t, c.DeleteIdea(ctx, "4"))
	require.NoError(t, c.DeleteReport(ctx, "8"))
	require.NoError(t, c.ApproveRequest(ctx, "2"))
	require.NoError(t, c.RejectRequest(ctx, "3"))

	assert.Equal(t, []string{
		"DELETE /delete_idea/4",
		"DELETE /delete_report/8",
		"POST /approve/2",
		"POST /reject/3",
	}, seen)
}

func TestTimestampsFromOtherServers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ideas":
			w.Write([]byte(`[
				{"id":1,"title":"sql","created_at":"2025-10-18 12:34:56"},
				{"id":2,"title":"naive","created_at":"2025-10-18T12:34:56.123456"},
				{"id":3,"title":"zoned","created_at":"2025-10-18T12:34:56+02:00"},
				{"id":4,"title":"junk","created_at":"yesterday"},
				{"id":5,"title":"number","created_at":1760790896}
			]`))
		case "/api/ideas/7/report":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1,"idea_id":7,"description":"spam","createdAt":"2025-10-18T12:34:56.123456"}`))
		}
	})
	ctx := context.Background()

	ideas, err := c.ListIdeas(ctx, models.Filter{})
	require.NoError(t, err)
	require.Len(t, ideas, 5)

	want := time.Date(2025, 10, 18, 12, 34, 56, 0, time.UTC)
	assert.True(t, ideas[0].CreatedAt.Equal(want), ideas[0].CreatedAt.String())
	assert.True(t, ideas[1].CreatedAt.Equal(want.Add(123456*time.Microsecond)), ideas[1].CreatedAt.String())
	assert.True(t, ideas[2].CreatedAt.Equal(want.Add(-2*time.Hour)), ideas[2].CreatedAt.String())
	assert.True(t, ideas[3].CreatedAt.IsZero())
	assert.True(t, ideas[4].CreatedAt.IsZero())

	rep, err := c.Report(ctx, "7", "spam")
	require.NoError(t, err)
	assert.Equal(t, models.ID("7"), rep.IdeaID)
	assert.True(t, rep.CreatedAt.Equal(want.Add(123456*time.Microsecond)))
}

func TestRequestDeveloperAccess_SendsForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/developer_request", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "I run the beta", r.PostForm.Get("reason"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":3,"user_id":9,"reason":"I run the beta","created_at":"2025-10-18 09:00:00"}`))
	})

	req, err := c.RequestDeveloperAccess(context.Background(), "I run the beta")
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), req.ID)
	assert.Equal(t, models.ID("9"), req.UserID)
	assert.False(t, req.CreatedAt.IsZero())
}

func TestRequestDeveloperAccess_PageAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>Your request has been sent</html>"))
	})

	req, err := c.RequestDeveloperAccess(context.Background(), "please")
	require.NoError(t, err)
	assert.Equal(t, "please", req.Reason)
	assert.Empty(t, req.ID)
}

func TestChat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chatbot", r.URL.Path)
		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Message)
		w.Write([]byte(`{"reply":"Hi!"}`))
	})

	reply, err := c.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi!", reply)
}

type countingTransport struct {
	calls atomic.Int32
}

func (ct *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	ct.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "board-test/2", r.Header.Get("User-Agent"))
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	transport := &countingTransport{}
	c := New(srv.URL,
		WithHTTPClient(&http.Client{Transport: transport}),
		WithUserAgent("board-test/2"),
		WithTimeout(5*time.Second),
	)

	_, err := c.ListIdeas(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), transport.calls.Load())
	assert.Equal(t, 5*time.Second, c.HTTPClient.Timeout)
}
