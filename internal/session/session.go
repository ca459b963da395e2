// Package session persists the single logged-in identity.
package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jcel/gestion/internal/storage"
	"github.com/jcel/gestion/pkg/domain"
)

// Key is the storage key the session is held under.
const Key = "session"

// Store reads and writes the session in a KV. It is the explicit session
// context passed to the client, the router and the views.
type Store struct {
	kv storage.KV
}

// NewStore wraps kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Get returns the stored session, or nil when none is stored.
// A stored value that does not parse is returned as an error.
func (s *Store) Get() (*domain.Session, error) {
	raw, ok, err := s.kv.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("session.Get: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session.Get: malformed session: %w", err)
	}
	return &sess, nil
}

// Set persists sess, overwriting any prior value.
func (s *Store) Set(sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	if err := s.kv.Set(Key, string(data)); err != nil {
		return fmt.Errorf("session.Set: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	if err := s.kv.Remove(Key); err != nil {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}

// Authenticated reports whether a session with a token is stored. A read
// failure counts as anonymous.
func (s *Store) Authenticated() bool {
	sess, err := s.Get()
	return err == nil && sess.Authenticated()
}

// TokenExpired reports whether sess carries a JWT whose exp claim is at or
// before now. The signature is not verified; tokens that are not JWTs or
// carry no exp never expire locally.
func TokenExpired(sess *domain.Session, now time.Time) bool {
	if !sess.Authenticated() {
		return false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(sess.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// DropExpired clears the stored session when its token has expired and
// reports whether it did.
func (s *Store) DropExpired(now time.Time) (bool, error) {
	sess, err := s.Get()
	if err != nil {
		return false, err
	}
	if !TokenExpired(sess, now) {
		return false, nil
	}
	return true, s.Clear()
}
