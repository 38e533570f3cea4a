package vaccine

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

const storeName = "vaccine"

// Store holds the vaccine records across all of the account's pets.
type Store struct {
	client  *apiclient.Client
	log     *logger.Logger
	metrics *metrics.Metrics
	col     store.Collection[model.Vaccine]
}

func NewStore(client *apiclient.Client, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		client:  client,
		log:     log.WithStore(storeName),
		metrics: m,
	}
}

func (s *Store) FetchAll(ctx context.Context) ([]model.Vaccine, error) {
	seq := s.col.Begin()

	var wire []model.VaccineWire
	if err := s.client.Get(ctx, "/vaccines", &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch vaccines: %w", err)
	}

	vaccines := make([]model.Vaccine, 0, len(wire))
	for _, w := range wire {
		vaccines = append(vaccines, model.VaccineFromWire(w))
	}
	if !s.col.ReplaceAll(seq, vaccines) {
		s.metrics.StaleResponsesDiscarded.WithLabelValues(storeName).Inc()
		s.log.Warn("discarded stale vaccine list response")
	}
	return vaccines, nil
}

func (s *Store) Create(ctx context.Context, req model.CreateVaccineRequest) (model.Vaccine, error) {
	if err := model.Validate(req); err != nil {
		return model.Vaccine{}, err
	}

	seq := s.col.Begin()

	var wire model.VaccineWire
	if err := s.client.Post(ctx, "/vaccines", req.ToWire(), &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Vaccine{}, fmt.Errorf("failed to create vaccine: %w", err)
	}

	created := model.VaccineFromWire(wire)
	s.col.Apply(seq, func(items []model.Vaccine) []model.Vaccine {
		return append(items, created)
	})
	return created, nil
}

func (s *Store) Update(ctx context.Context, vaccine model.Vaccine) (model.Vaccine, error) {
	if vaccine.ID == "" {
		return model.Vaccine{}, apperrors.Validation("vaccine id is required")
	}

	seq := s.col.Begin()

	body := vaccine.ToWire()
	body.ID = ""
	var wire model.VaccineWire
	if err := s.client.Put(ctx, "/vaccines/"+vaccine.ID.String(), body, &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Vaccine{}, fmt.Errorf("failed to update vaccine %s: %w", vaccine.ID, err)
	}

	updated := model.VaccineFromWire(wire)
	s.col.Apply(seq, func(items []model.Vaccine) []model.Vaccine {
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = updated
			}
		}
		return items
	})
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	seq := s.col.Begin()

	if err := s.client.Delete(ctx, "/vaccines/"+id.String()); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return fmt.Errorf("failed to delete vaccine %s: %w", id, err)
	}

	s.col.Apply(seq, func(items []model.Vaccine) []model.Vaccine {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept
	})
	return nil
}

// Vaccines returns the current collection state.
func (s *Store) Vaccines() store.Snapshot[model.Vaccine] {
	return s.col.Snapshot()
}

// Get finds a vaccine by id in local state.
func (s *Store) Get(id model.ID) (model.Vaccine, bool) {
	return s.col.Find(func(v model.Vaccine) bool { return v.ID == id })
}
