// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrInvalidToken   = errors.New("invalid token format")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// sign returns the HMAC of userID, URL-safe base64 without padding
func sign(userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// GenerateSessionToken creates a session token of the form "<user>.<mac>".
// It is deterministic, so nothing needs to be stored to validate it.
func GenerateSessionToken(userID, salt string) string {
	return userID + "." + sign(userID, salt)
}

// ValidateSessionToken checks the token's MAC and returns the user it names
func ValidateSessionToken(token, salt string) (string, error) {
	userID, mac, err := splitToken(token)
	if err != nil {
		return "", err
	}
	expected := sign(userID, salt)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return "", ErrInvalidSession
	}
	return userID, nil
}

// SessionUserID reads the user out of a token without checking its MAC.
// The result is only fit for display, never for authorization.
func SessionUserID(token string) string {
	userID, _, err := splitToken(token)
	if err != nil {
		return ""
	}
	return userID
}

func splitToken(token string) (userID, mac string, err error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", "", ErrInvalidToken
	}
	return token[:i], token[i+1:], nil
}

// HashIP returns the salted 16-hex-char key the rate limiter tracks a
// client under, so raw addresses are never held in memory
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil)[:8])
}
