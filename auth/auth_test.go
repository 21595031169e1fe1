// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func isHex(s string) bool {
	return strings.Trim(s, "0123456789abcdef") == ""
}

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range []int{4, 8, 12} {
		id, err := GenerateID(n)
		if err != nil {
			t.Fatalf("GenerateID(%d): %v", n, err)
		}
		if len(id) != 2*n || !isHex(id) {
			t.Errorf("GenerateID(%d) = %q, want %d hex chars", n, id, 2*n)
		}
		if seen[id] {
			t.Errorf("GenerateID(%d) repeated %q", n, id)
		}
		seen[id] = true
	}
}

func TestGenerateSessionToken(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		salt   string
	}{
		{"numeric user", "42", "secret-salt"},
		{"hex user", "9f86d081884c7d65", "salt"},
		{"empty salt", "7", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := GenerateSessionToken(tt.userID, tt.salt)

			if !strings.HasPrefix(token, tt.userID+".") {
				t.Errorf("GenerateSessionToken() = %q, want prefix %q", token, tt.userID+".")
			}

			// Should be deterministic
			if token != GenerateSessionToken(tt.userID, tt.salt) {
				t.Error("GenerateSessionToken() is not deterministic")
			}

			// MAC must be URL-safe without padding
			mac := token[len(tt.userID)+1:]
			if strings.ContainsAny(mac, "+/=") {
				t.Errorf("GenerateSessionToken() MAC is not URL-safe: %s", mac)
			}
		})
	}

	if GenerateSessionToken("1", "salt1") == GenerateSessionToken("1", "salt2") {
		t.Error("different salts should produce different tokens")
	}
}

func TestValidateSessionToken(t *testing.T) {
	salt := "test-salt"
	valid := GenerateSessionToken("42", salt)

	tests := []struct {
		name     string
		token    string
		wantUser string
		wantErr  error
	}{
		{"valid token", valid, "42", nil},
		{"wrong user", "43" + valid[2:], "", ErrInvalidSession},
		{"tampered mac", valid + "x", "", ErrInvalidSession},
		{"other salt", GenerateSessionToken("42", "other"), "", ErrInvalidSession},
		{"no separator", "42abc", "", ErrInvalidToken},
		{"empty user", ".abc", "", ErrInvalidToken},
		{"empty mac", "42.", "", ErrInvalidToken},
		{"empty", "", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := ValidateSessionToken(tt.token, salt)
			if err != tt.wantErr {
				t.Fatalf("ValidateSessionToken() error = %v, want %v", err, tt.wantErr)
			}
			if user != tt.wantUser {
				t.Errorf("ValidateSessionToken() user = %q, want %q", user, tt.wantUser)
			}
		})
	}
}

func TestSessionUserID(t *testing.T) {
	if got := SessionUserID(GenerateSessionToken("u.1", "s")); got != "u.1" {
		t.Errorf("SessionUserID() = %q, want %q", got, "u.1")
	}
	if got := SessionUserID("garbage"); got != "" {
		t.Errorf("SessionUserID() = %q, want empty", got)
	}
}

func TestHashIP(t *testing.T) {
	const salt = "limiter-salt"
	keys := map[string]string{}
	for _, ip := range []string{"203.0.113.7", "203.0.113.8", "2001:db8::5"} {
		key := HashIP(ip, salt)
		if len(key) != 16 || !isHex(key) {
			t.Errorf("HashIP(%q) = %q, want 16 hex chars", ip, key)
		}
		if key != HashIP(ip, salt) {
			t.Errorf("HashIP(%q) changed between calls", ip)
		}
		if other, dup := keys[key]; dup {
			t.Errorf("HashIP(%q) collides with %q", ip, other)
		}
		keys[key] = ip
	}

	if HashIP("203.0.113.7", "a") == HashIP("203.0.113.7", "b") {
		t.Error("salt does not change the key")
	}
}

func BenchmarkValidateSessionToken(b *testing.B) {
	salt := "test-salt"
	token := GenerateSessionToken("test-user-123", salt)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateSessionToken(token, salt)
	}
}
