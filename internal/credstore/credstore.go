// Package credstore persists the Basic-auth credential used by the
// MotoVision API client.
//
// The stored token is a reversible base64 encoding of "email:password", not
// a hash. The backend authenticates with HTTP Basic credentials, so the
// client has to be able to replay the exact pair; do not swap this for a
// cryptographic primitive without changing the backend contract.
package credstore

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/motovision/motovision/internal/storage"
)

// Storage keys. Shared namespace documented in package storage.
const (
	EmailKey = "auth_email"
	TokenKey = "auth_token"
)

var (
	// ErrInvalidInput reports missing or blank credentials passed to Set.
	ErrInvalidInput = errors.New("invalid credentials for authentication")

	// ErrTokenMissing reports that no auth token is currently persisted.
	// Callers use it to distinguish "no session" from request failures.
	ErrTokenMissing = errors.New("no auth token stored")
)

// Store reads and writes the single active credential. Exactly one
// credential exists at a time; Set overwrites any prior one.
type Store struct {
	kv *storage.Store
}

// New wraps a key-value store.
func New(kv *storage.Store) *Store {
	return &Store{kv: kv}
}

// Set normalizes the email (trim + lowercase), derives the Basic-auth token
// and persists both entries in one atomic write. The derived token is
// returned for immediate use.
func (s *Store) Set(email, password string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return "", ErrInvalidInput
	}

	token := base64.StdEncoding.EncodeToString([]byte(normalized + ":" + password))

	err := s.kv.SetMulti(map[string]string{
		EmailKey: normalized,
		TokenKey: token,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Clear removes the credential. Clearing an absent credential is not an
// error.
func (s *Store) Clear() error {
	return s.kv.Remove(EmailKey, TokenKey)
}

// Token returns the persisted auth token. It never touches the network;
// absence is reported as ErrTokenMissing.
func (s *Store) Token() (string, error) {
	token, ok := s.kv.Get(TokenKey)
	if !ok || token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}

// Email returns the normalized email of the active credential, if any.
func (s *Store) Email() (string, bool) {
	email, ok := s.kv.Get(EmailKey)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
