// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantJSON bool
		wantErr  bool
	}{
		{name: "text", format: FormatText},
		{name: "json", format: FormatJSON, wantJSON: true},
		{name: "auto on a buffer is json", format: FormatAuto, wantJSON: true},
		{name: "empty means auto", format: "", wantJSON: true},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := NewHandler(tt.format, &buf)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			slog.New(h).Info("hello", "key", "value")
			line := strings.TrimSpace(buf.String())

			var decoded map[string]any
			isJSON := json.Unmarshal([]byte(line), &decoded) == nil
			if isJSON != tt.wantJSON {
				t.Errorf("Expected json=%v, got %q", tt.wantJSON, line)
			}
			if !strings.Contains(line, "hello") || !strings.Contains(line, "value") {
				t.Errorf("Record missing fields: %q", line)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	if err := Setup(FormatJSON, &buf); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	slog.Info("installed")

	if !strings.Contains(buf.String(), `"msg":"installed"`) {
		t.Errorf("Default logger not installed: %q", buf.String())
	}

	if err := Setup("bogus", &buf); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
