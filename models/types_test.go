// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"number", `7`, "7"},
		{"string", `"abc"`, "abc"},
		{"numeric string", `"42"`, "42"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("expected %q, got %q", tt.want, id)
			}
		})
	}
}

func TestIDUnmarshal_Invalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestIDMarshal(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"12", `12`},
		{"0", `0`},
		{"007", `"007"`},
		{"u-1", `"u-1"`},
		{"", `""`},
	}

	for _, tt := range tests {
		b, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("marshal %q: %v", tt.id, err)
		}
		if string(b) != tt.want {
			t.Errorf("marshal %q: expected %s, got %s", tt.id, tt.want, b)
		}
	}
}

func TestIdeaDecodesIntegerIDs(t *testing.T) {
	body := `{"id":3,"user_id":9,"title":"t","description":"d","category":"tech",
		"image_url":"","upvotes":[9,4],"downvotes":[]}`

	var idea Idea
	if err := json.Unmarshal([]byte(body), &idea); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if idea.ID != "3" || idea.UserID != "9" {
		t.Errorf("unexpected ids: %q %q", idea.ID, idea.UserID)
	}
	if !idea.HasUpvote("9") || idea.HasDownvote("9") {
		t.Error("expected user 9 in upvotes only")
	}
	if idea.HasUpvote("") {
		t.Error("empty user must never be active")
	}
	if idea.Score() != 2 {
		t.Errorf("expected score 2, got %d", idea.Score())
	}
}

func TestVoteTypeValid(t *testing.T) {
	if !VoteUp.Valid() || !VoteDown.Valid() {
		t.Error("expected both directions valid")
	}
	if VoteType("sideways").Valid() || VoteType("").Valid() {
		t.Error("expected unknown directions invalid")
	}
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Search: "x"}.Normalize()
	if f.Category != CategoryAll || f.Sort != SortNewest || f.Search != "x" {
		t.Errorf("unexpected defaults: %+v", f)
	}

	f = Filter{Category: "tech", Sort: SortTrending}.Normalize()
	if f.Category != "tech" || f.Sort != SortTrending {
		t.Errorf("expected values kept, got %+v", f)
	}

	f = Filter{Sort: "random"}.Normalize()
	if f.Sort != SortNewest {
		t.Errorf("expected unknown sort to fall back to newest, got %s", f.Sort)
	}
}
