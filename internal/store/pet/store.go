package pet

import (
	"context"
	"fmt"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/internal/store"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
)

const storeName = "pet"

// Store holds the registered pets of the authenticated account.
type Store struct {
	client  *apiclient.Client
	log     *logger.Logger
	metrics *metrics.Metrics
	col     store.Collection[model.Pet]
}

func NewStore(client *apiclient.Client, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		client:  client,
		log:     log.WithStore(storeName),
		metrics: m,
	}
}

// FetchAll replaces the collection wholesale with the server's pet
// list.
func (s *Store) FetchAll(ctx context.Context) ([]model.Pet, error) {
	seq := s.col.Begin()

	var wire []model.PetWire
	if err := s.client.Get(ctx, "/pet", &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch pets: %w", err)
	}

	pets := make([]model.Pet, 0, len(wire))
	for _, w := range wire {
		pets = append(pets, model.PetFromWire(w))
	}
	if !s.col.ReplaceAll(seq, pets) {
		s.metrics.StaleResponsesDiscarded.WithLabelValues(storeName).Inc()
		s.log.Warn("discarded stale pet list response")
	}
	return pets, nil
}

// Register creates a new pet and appends the normalized server
// response to the collection. Validation failures never reach the
// network; request failures propagate so the caller keeps its form
// state.
func (s *Store) Register(ctx context.Context, req model.RegisterPetRequest) (model.Pet, error) {
	if err := model.Validate(req); err != nil {
		return model.Pet{}, err
	}

	seq := s.col.Begin()

	var wire model.PetWire
	if err := s.client.Post(ctx, "/pet", req, &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Pet{}, fmt.Errorf("failed to register pet: %w", err)
	}

	created := model.PetFromWire(wire)
	s.col.Apply(seq, func(items []model.Pet) []model.Pet {
		return append(items, created)
	})
	s.log.Debug("pet registered", "id", created.ID.String())
	return created, nil
}

// Pets returns the current collection state.
func (s *Store) Pets() store.Snapshot[model.Pet] {
	return s.col.Snapshot()
}

// Get looks up one registered pet by id.
func (s *Store) Get(id model.ID) (model.Pet, bool) {
	return s.col.Find(func(p model.Pet) bool { return p.ID == id })
}
