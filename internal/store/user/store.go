package user

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
)

// Store holds the session's profile singleton: set on login or profile
// fetch, cleared on logout.
type Store struct {
	client *apiclient.Client
	log    *logger.Logger

	mu      sync.RWMutex
	profile *model.UserProfile
	loading bool
	errMsg  string
}

func NewStore(client *apiclient.Client, log *logger.Logger) *Store {
	return &Store{
		client: client,
		log:    log.WithStore("user"),
	}
}

func (s *Store) Fetch(ctx context.Context) (model.UserProfile, error) {
	s.begin()

	var env model.ProfileEnvelope
	if err := s.client.Get(ctx, "/auth/profile", &env); err != nil {
		s.fail(apperrors.Message(err))
		return model.UserProfile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile := model.UserProfileFromWire(env.Profile)
	s.setProfile(&profile)
	s.done()
	return profile, nil
}

func (s *Store) Update(ctx context.Context, req model.UpdateProfileRequest) (model.UserProfile, error) {
	if err := model.Validate(req); err != nil {
		return model.UserProfile{}, err
	}

	s.begin()

	if err := s.client.Put(ctx, "/auth/profile", req, nil); err != nil {
		s.fail(apperrors.Message(err))
		return model.UserProfile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	s.mu.Lock()
	if s.profile != nil {
		s.profile.FirstName = req.FirstName
		s.profile.LastName = req.LastName
		if req.Phone != "" {
			s.profile.Phone = req.Phone
		}
		if req.State != "" {
			s.profile.State = req.State
		}
	}
	updated := s.profile
	s.loading = false
	s.mu.Unlock()

	if updated == nil {
		return model.UserProfile{}, nil
	}
	return *updated, nil
}

// Profile returns the current profile, if set.
func (s *Store) Profile() (model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return model.UserProfile{}, false
	}
	return *s.profile, true
}

// SetEmail updates the in-memory profile email.
func (s *Store) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil {
		s.profile.Email = email
	}
}

// SetPhone updates the in-memory profile phone.
func (s *Store) SetPhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil {
		s.profile.Phone = phone
	}
}

// Clear drops the profile, the logout teardown.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	s.errMsg = ""
	s.loading = false
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

func (s *Store) setProfile(p *model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
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
