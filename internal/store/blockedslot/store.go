package blockedslot

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
)

const cacheKey = "blocked_slots"

// Store fetches the read-only blocked-slot list. The list is fetched
// once per booking session and reused until the TTL lapses.
type Store struct {
	client *apiclient.Client
	log    *logger.Logger
	limit  int
	cache  *gocache.Cache

	mu      sync.RWMutex
	loading bool
	errMsg  string
}

func NewStore(client *apiclient.Client, log *logger.Logger, limit int, ttl time.Duration) *Store {
	if limit <= 0 {
		limit = 1000
	}
	return &Store{
		client: client,
		log:    log.WithStore("blocked_slot"),
		limit:  limit,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// Fetch returns the blocked slots, from cache when fresh.
func (s *Store) Fetch(ctx context.Context) ([]model.BlockedSlot, error) {
	if v, ok := s.cache.Get(cacheKey); ok {
		// Serving cached slots is a success; drop any error a racing
		// fetch may have stored after the cache was filled.
		s.mu.Lock()
		s.errMsg = ""
		s.mu.Unlock()
		return v.([]model.BlockedSlot), nil
	}

	s.begin()

	var env model.BlockedSlotEnvelope
	path := fmt.Sprintf("/admin/blocked_slot?limit=%d", s.limit)
	if err := s.client.Get(ctx, path, &env); err != nil {
		s.fail(apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch blocked slots: %w", err)
	}

	slots := make([]model.BlockedSlot, 0, len(env.Data))
	for _, w := range env.Data {
		slots = append(slots, model.BlockedSlotFromWire(w))
	}
	s.cache.SetDefault(cacheKey, slots)
	s.done()
	return slots, nil
}

// Invalidate drops the cached list so the next Fetch hits the backend.
func (s *Store) Invalidate() {
	s.cache.Delete(cacheKey)
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
