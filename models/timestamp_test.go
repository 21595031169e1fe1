// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	base := time.Date(2025, 10, 18, 12, 34, 56, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2025-10-18T12:34:56Z"`, base},
		{"rfc3339 with offset", `"2025-10-18T14:34:56+02:00"`, base},
		{"iso without zone", `"2025-10-18T12:34:56.123456"`, base.Add(123456 * time.Microsecond)},
		{"iso seconds without zone", `"2025-10-18T12:34:56"`, base},
		{"sql datetime", `"2025-10-18 12:34:56"`, base},
		{"date only", `"2025-10-18"`, time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"unreadable", `"last tuesday"`, time.Time{}},
		{"empty", `""`, time.Time{}},
		{"null", `null`, time.Time{}},
		{"number", `1760790896`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ts.Time)
			}
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	b, err := json.Marshal(Idea{ID: "1", CreatedAt: ParseTimestamp("2025-10-18 12:34:56")})
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["created_at"] != "2025-10-18T12:34:56Z" {
		t.Errorf("expected RFC 3339 output, got %v", raw["created_at"])
	}

	b, err = json.Marshal(Report{})
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["createdAt"] != nil {
		t.Errorf("expected null for the zero time, got %v", raw["createdAt"])
	}
}
