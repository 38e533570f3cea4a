package medical

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

const storeName = "medical"

// Store holds the medical records across all of the account's pets.
type Store struct {
	client  *apiclient.Client
	log     *logger.Logger
	metrics *metrics.Metrics
	col     store.Collection[model.MedicalRecord]
}

func NewStore(client *apiclient.Client, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		client:  client,
		log:     log.WithStore(storeName),
		metrics: m,
	}
}

func (s *Store) FetchAll(ctx context.Context) ([]model.MedicalRecord, error) {
	seq := s.col.Begin()

	var wire []model.MedicalRecordWire
	if err := s.client.Get(ctx, "/medical-records", &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch medical records: %w", err)
	}

	records := make([]model.MedicalRecord, 0, len(wire))
	for _, w := range wire {
		records = append(records, model.MedicalRecordFromWire(w))
	}
	if !s.col.ReplaceAll(seq, records) {
		s.metrics.StaleResponsesDiscarded.WithLabelValues(storeName).Inc()
		s.log.Warn("discarded stale medical record list response")
	}
	return records, nil
}

func (s *Store) Create(ctx context.Context, req model.CreateMedicalRecordRequest) (model.MedicalRecord, error) {
	if err := model.Validate(req); err != nil {
		return model.MedicalRecord{}, err
	}

	seq := s.col.Begin()

	var wire model.MedicalRecordWire
	if err := s.client.Post(ctx, "/medical-records", req.ToWire(), &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.MedicalRecord{}, fmt.Errorf("failed to create medical record: %w", err)
	}

	created := model.MedicalRecordFromWire(wire)
	s.col.Apply(seq, func(items []model.MedicalRecord) []model.MedicalRecord {
		return append(items, created)
	})
	return created, nil
}

// Update rewrites a record's detail text and photo list.
func (s *Store) Update(ctx context.Context, record model.MedicalRecord) (model.MedicalRecord, error) {
	if record.ID == "" {
		return model.MedicalRecord{}, apperrors.Validation("medical record id is required")
	}

	seq := s.col.Begin()

	body := record.ToWire()
	body.ID = ""
	var wire model.MedicalRecordWire
	if err := s.client.Put(ctx, "/medical-records/"+record.ID.String(), body, &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.MedicalRecord{}, fmt.Errorf("failed to update medical record %s: %w", record.ID, err)
	}

	updated := model.MedicalRecordFromWire(wire)
	s.col.Apply(seq, func(items []model.MedicalRecord) []model.MedicalRecord {
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

	if err := s.client.Delete(ctx, "/medical-records/"+id.String()); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return fmt.Errorf("failed to delete medical record %s: %w", id, err)
	}

	s.col.Apply(seq, func(items []model.MedicalRecord) []model.MedicalRecord {
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

// Records returns the current collection state.
func (s *Store) Records() store.Snapshot[model.MedicalRecord] {
	return s.col.Snapshot()
}

// Get finds a record by id in local state, without a network call.
func (s *Store) Get(id model.ID) (model.MedicalRecord, bool) {
	return s.col.Find(func(r model.MedicalRecord) bool { return r.ID == id })
}
