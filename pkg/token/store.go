package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoRefreshToken = errors.New("no refresh token present")

// Pair is the persisted credential pair. These are the only durable
// pieces of client state the portal keeps.
type Pair struct {
	AccessToken  string `json:"auth_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store persists the access/refresh token pair to a single file,
// standing in for the browser's cookie jar. All reads go to the
// in-memory copy; every write is flushed to disk.
type Store struct {
	mu   sync.RWMutex
	path string
	pair Pair
}

// NewStore loads any previously persisted pair from path. A missing
// file yields an empty store, not an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	if err := json.Unmarshal(data, &s.pair); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return s, nil
}

// AccessToken returns the current access token, empty if logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken
}

// RefreshToken returns the current refresh token.
func (s *Store) RefreshToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}
	return s.pair.RefreshToken, nil
}

// SetPair persists a freshly issued pair.
func (s *Store) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{AccessToken: access, RefreshToken: refresh}
	return s.flushLocked()
}

// SetAccessToken replaces only the access token, keeping the refresh
// token. Used after a successful refresh exchange.
func (s *Store) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair.AccessToken = access
	return s.flushLocked()
}

// Clear drops both tokens, in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// AccessTokenExpiresWithin peeks at the access token's exp claim
// without verifying the signature (the client holds no signing key)
// and reports whether it expires within d. An unparseable or
// claim-less token is treated as expiring, so the caller refreshes.
func (s *Store) AccessTokenExpiresWithin(d time.Duration) bool {
	s.mu.RLock()
	raw := s.pair.AccessToken
	s.mu.RUnlock()

	if raw == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Until(exp.Time) < d
}

func (s *Store) flushLocked() error {
	data, err := json.Marshal(s.pair)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
