package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/token"
)

// Store drives the email/OTP login flow and owns the persisted
// credential pair.
type Store struct {
	client *apiclient.Client
	tokens *token.Store
	log    *logger.Logger

	mu      sync.RWMutex
	email   string
	loading bool
	errMsg  string
}

func NewStore(client *apiclient.Client, tokens *token.Store, log *logger.Logger) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		log:    log.WithStore("auth"),
	}
}

// SendOTP requests a one-time code for the address and remembers the
// address for the verification step.
func (s *Store) SendOTP(ctx context.Context, email string) error {
	req := model.SendOTPRequest{Email: email}
	if err := model.Validate(req); err != nil {
		return err
	}

	s.begin()

	if err := s.client.Post(ctx, "/auth/send-otp", req, nil); err != nil {
		s.fail(apperrors.Message(err))
		return fmt.Errorf("failed to send OTP: %w", err)
	}

	s.mu.Lock()
	s.email = email
	s.loading = false
	s.mu.Unlock()
	s.log.Debug("OTP requested", "email", email)
	return nil
}

// VerifyOTP exchanges the code for a token pair and persists it.
func (s *Store) VerifyOTP(ctx context.Context, otp string) error {
	s.mu.RLock()
	email := s.email
	s.mu.RUnlock()

	req := model.VerifyOTPRequest{Email: email, OTP: otp}
	if err := model.Validate(req); err != nil {
		return err
	}

	s.begin()

	var resp model.TokenResponse
	if err := s.client.Post(ctx, "/auth/verify-otp", req, &resp); err != nil {
		s.fail(apperrors.Message(err))
		return fmt.Errorf("failed to verify OTP: %w", err)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		s.fail("invalid verification response")
		return apperrors.Business("invalid verification response", nil)
	}

	if err := s.tokens.SetPair(resp.Token, resp.RefreshToken); err != nil {
		s.fail(apperrors.Message(err))
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	s.done()
	s.log.Info("login succeeded", "email", email)
	return nil
}

// Authenticated reports whether a credential pair is present.
func (s *Store) Authenticated() bool {
	return s.tokens.AccessToken() != ""
}

// Logout clears the persisted credential pair and the flow state.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.email = ""
	s.errMsg = ""
	s.loading = false
	s.mu.Unlock()
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// Email returns the address awaiting verification.
func (s *Store) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

func (s *Store) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.errMsg = msg
}
