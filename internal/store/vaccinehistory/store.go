package vaccinehistory

import (
	"context"
	"fmt"
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
)

const storeName = "vaccine_history"

// Store holds treatment history entries partitioned by parent vaccine
// id. Partitions are lazy: a vaccine's history is fetched only when
// its record is first expanded, then memoized for the rest of the
// session.
type Store struct {
	client  *apiclient.Client
	log     *logger.Logger
	metrics *metrics.Metrics

	mu      sync.RWMutex
	loading bool
	errMsg  string

	histories *gocache.Cache
}

func NewStore(client *apiclient.Client, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		client:    client,
		log:       log.WithStore(storeName),
		metrics:   m,
		histories: gocache.New(gocache.NoExpiration, 0),
	}
}

func historyPath(vaccineID model.ID) string {
	return "/vaccines/" + vaccineID.String() + "/history"
}

// Fetch returns the history for one vaccine, hitting the network only
// on the first request per vaccine id in this session.
func (s *Store) Fetch(ctx context.Context, vaccineID model.ID) ([]model.VaccineHistory, error) {
	if cached, ok := s.Histories(vaccineID); ok {
		return cached, nil
	}

	s.begin()

	var wire []model.VaccineHistoryWire
	if err := s.client.Get(ctx, historyPath(vaccineID), &wire); err != nil {
		s.fail(apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch history for vaccine %s: %w", vaccineID, err)
	}

	entries := make([]model.VaccineHistory, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, model.VaccineHistoryFromWire(w))
	}
	s.setPartition(vaccineID, entries)
	s.done()
	return entries, nil
}

func (s *Store) Create(ctx context.Context, req model.CreateVaccineHistoryRequest) (model.VaccineHistory, error) {
	if err := model.Validate(req); err != nil {
		return model.VaccineHistory{}, err
	}

	s.begin()

	var wire model.VaccineHistoryWire
	if err := s.client.Post(ctx, historyPath(req.VaccineID), req.ToWire(), &wire); err != nil {
		s.fail(apperrors.Message(err))
		return model.VaccineHistory{}, fmt.Errorf("failed to create history entry: %w", err)
	}

	created := model.VaccineHistoryFromWire(wire)
	entries, _ := s.Histories(created.VaccineID)
	s.setPartition(created.VaccineID, append(entries, created))
	s.done()
	return created, nil
}

func (s *Store) Update(ctx context.Context, entry model.VaccineHistory) (model.VaccineHistory, error) {
	if entry.ID == "" || entry.VaccineID == "" {
		return model.VaccineHistory{}, apperrors.Validation("history entry and vaccine ids are required")
	}

	s.begin()

	body := entry.ToWire()
	body.ID = ""
	body.VaccineID = ""
	var wire model.VaccineHistoryWire
	if err := s.client.Put(ctx, historyPath(entry.VaccineID)+"/"+entry.ID.String(), body, &wire); err != nil {
		s.fail(apperrors.Message(err))
		return model.VaccineHistory{}, fmt.Errorf("failed to update history entry %s: %w", entry.ID, err)
	}

	updated := model.VaccineHistoryFromWire(wire)
	if entries, ok := s.Histories(updated.VaccineID); ok {
		for i := range entries {
			if entries[i].ID == updated.ID {
				entries[i] = updated
			}
		}
		s.setPartition(updated.VaccineID, entries)
	}
	s.done()
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, vaccineID, historyID model.ID) error {
	s.begin()

	if err := s.client.Delete(ctx, historyPath(vaccineID)+"/"+historyID.String()); err != nil {
		s.fail(apperrors.Message(err))
		return fmt.Errorf("failed to delete history entry %s: %w", historyID, err)
	}

	if entries, ok := s.Histories(vaccineID); ok {
		kept := entries[:0]
		for _, e := range entries {
			if e.ID != historyID {
				kept = append(kept, e)
			}
		}
		s.setPartition(vaccineID, kept)
	}
	s.done()
	return nil
}

// Histories returns the memoized partition for one vaccine. The second
// return distinguishes "never fetched" from an empty history.
func (s *Store) Histories(vaccineID model.ID) ([]model.VaccineHistory, bool) {
	v, ok := s.histories.Get(vaccineID.String())
	if !ok {
		return nil, false
	}
	entries := v.([]model.VaccineHistory)
	out := make([]model.VaccineHistory, len(entries))
	copy(out, entries)
	return out, true
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

func (s *Store) setPartition(vaccineID model.ID, entries []model.VaccineHistory) {
	s.histories.Set(vaccineID.String(), entries, gocache.NoExpiration)
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
