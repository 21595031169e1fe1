// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/ideaboard/models"
)

// maxErrorBody bounds how much of a failed response is read for its message
const maxErrorBody = 64 << 10

// APIError is returned when the ideas API answers with a failure status or
// a {success: false} envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ideas api %d: %s", e.Status, e.Message)
}

// NetworkError is returned when a request never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is a transport failure
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// Client talks to the ideas API. It holds configuration only.
type Client struct {
	BaseURL      string
	SessionToken string
	UserAgent    string
	HTTPClient   *http.Client
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: "ideaboard/1",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Option configures the client.
type Option func(*Client)

// WithSessionToken sets the session cookie sent with every request.
func WithSessionToken(token string) Option {
	return func(c *Client) { c.SessionToken = token }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = ua }
}

// send performs the request and returns the response of any non-failure
// status. The caller closes the body.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.SessionToken != "" {
		req.AddCookie(&http.Cookie{Name: models.SessionCookieName, Value: c.SessionToken})
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// decodeError builds an APIError from the {error} envelope, a plain text
// body, or the status text, in that order.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope models.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil {
		switch {
		case envelope.Error != "":
			return &APIError{Status: resp.StatusCode, Message: envelope.Error}
		case envelope.Message != "":
			return &APIError{Status: resp.StatusCode, Message: envelope.Message}
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" || strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "<") {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

// ListIdeas calls GET /api/ideas.
func (c *Client) ListIdeas(ctx context.Context, f models.Filter) ([]models.Idea, error) {
	f = f.Normalize()
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("category", f.Category)
	q.Set("sort", f.Sort)

	var out []models.Idea
	if err := c.do(ctx, http.MethodGet, "/api/ideas?"+q.Encode(), nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIdea calls POST /api/ideas with a multipart body.
func (c *Client) CreateIdea(ctx context.Context, idea models.NewIdea) (*models.Idea, error) {
	fields := map[string]string{
		"title":       idea.Title,
		"description": idea.Description,
		"category":    idea.Category,
	}
	if idea.ImageURL != "" {
		fields["image_url"] = idea.ImageURL
	}
	body, contentType, err := encodeMultipart(fields, idea.Image)
	if err != nil {
		return nil, err
	}

	var out models.Idea
	if err := c.do(ctx, http.MethodPost, "/api/ideas", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Vote calls POST /api/ideas/{id}/vote and returns the updated record.
func (c *Client) Vote(ctx context.Context, id models.ID, vt models.VoteType) (*models.Idea, error) {
	var out models.Idea
	err := c.doJSON(ctx, http.MethodPost, "/api/ideas/"+url.PathEscape(id.String())+"/vote",
		models.VoteRequest{VoteType: vt}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Report calls POST /api/ideas/{id}/report.
func (c *Client) Report(ctx context.Context, id models.ID, description string) (*models.Report, error) {
	var out models.Report
	err := c.doJSON(ctx, http.MethodPost, "/api/ideas/"+url.PathEscape(id.String())+"/report",
		models.ReportRequest{Description: description}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// EditIdea calls POST /edit_idea/{id} with a multipart body. A
// {success: false} answer is returned as an APIError.
func (c *Client) EditIdea(ctx context.Context, id models.ID, edit models.IdeaEdit) (*models.EditResponse, error) {
	fields := map[string]string{
		"title":       edit.Title,
		"description": edit.Description,
	}
	if edit.Category != "" {
		fields["category"] = edit.Category
	}
	body, contentType, err := encodeMultipart(fields, edit.Image)
	if err != nil {
		return nil, err
	}

	var out models.EditResponse
	if err := c.do(ctx, http.MethodPost, "/edit_idea/"+url.PathEscape(id.String()), body, contentType, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{Status: http.StatusOK, Message: orDefault(out.Error, "edit rejected")}
	}
	return &out, nil
}

// DeleteIdea calls DELETE /delete_idea/{id}.
func (c *Client) DeleteIdea(ctx context.Context, id models.ID) error {
	var out models.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/delete_idea/"+url.PathEscape(id.String()), nil, "", &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusOK, Message: orDefault(out.Error, "delete rejected")}
	}
	return nil
}

// DeleteReport calls DELETE /delete_report/{id}.
func (c *Client) DeleteReport(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/delete_report/"+url.PathEscape(id.String()), nil, "", nil)
}

// ApproveRequest calls POST /approve/{id}.
func (c *Client) ApproveRequest(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodPost, "/approve/"+url.PathEscape(id.String()), nil, "", nil)
}

// RejectRequest calls POST /reject/{id}.
func (c *Client) RejectRequest(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodPost, "/reject/"+url.PathEscape(id.String()), nil, "", nil)
}

// RequestDeveloperAccess calls POST /developer_request with a form body.
// Servers that answer with a page instead of the created request still
// count as success; the returned record then carries only the reason.
func (c *Client) RequestDeveloperAccess(ctx context.Context, reason string) (*models.DeveloperRequest, error) {
	path := "/developer_request"
	form := url.Values{"reason": {reason}}
	resp, err := c.send(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := models.DeveloperRequest{Reason: reason}
	if !isJSON(resp) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &out, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("POST %s: decode response: %w", path, err)
	}
	return &out, nil
}

// Chat calls POST /chatbot and returns the reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var out models.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chatbot", models.ChatRequest{Message: message}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func isJSON(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "json")
}

func encodeMultipart(fields map[string]string, image *models.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, name := range []string{"title", "description", "category", "image_url"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if err := mw.WriteField(name, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if image != nil && len(image.Data) > 0 {
		fw, err := mw.CreateFormFile("image", orDefault(image.Filename, "upload"))
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := fw.Write(image.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
