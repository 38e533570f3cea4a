package appointment

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/internal/store"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
)

const storeName = "appointment"

// Store holds the account's appointments plus the "currently viewed"
// appointment slot used by the detail screen.
type Store struct {
	client  *apiclient.Client
	log     *logger.Logger
	metrics *metrics.Metrics
	col     store.Collection[model.Appointment]

	mu       sync.RWMutex
	selected *model.Appointment
}

func NewStore(client *apiclient.Client, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		client:  client,
		log:     log.WithStore(storeName),
		metrics: m,
	}
}

func (s *Store) FetchAll(ctx context.Context) ([]model.Appointment, error) {
	seq := s.col.Begin()

	var wire []model.AppointmentWire
	if err := s.client.Get(ctx, "/appointments", &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	appointments := make([]model.Appointment, 0, len(wire))
	for _, w := range wire {
		appointments = append(appointments, model.AppointmentFromWire(w))
	}
	if !s.col.ReplaceAll(seq, appointments) {
		s.metrics.StaleResponsesDiscarded.WithLabelValues(storeName).Inc()
		s.log.Warn("discarded stale appointment list response")
	}
	return appointments, nil
}

// FetchOne loads a single appointment into the currently-viewed slot,
// and upserts it into the collection if already present there.
func (s *Store) FetchOne(ctx context.Context, id model.ID) (model.Appointment, error) {
	seq := s.col.Begin()

	var wire model.AppointmentWire
	if err := s.client.Get(ctx, "/appointments/"+id.String(), &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Appointment{}, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}

	apt := model.AppointmentFromWire(wire)
	s.col.Apply(seq, func(items []model.Appointment) []model.Appointment {
		for i := range items {
			if items[i].ID == apt.ID {
				items[i] = apt
			}
		}
		return items
	})
	s.setSelected(&apt)
	return apt, nil
}

// Create books an appointment. All form rules are enforced before any
// network call; the normalized server response is appended to the
// collection.
func (s *Store) Create(ctx context.Context, booking model.Appointment) (model.Appointment, error) {
	booking.NumberOfPets = len(booking.Pets)
	if err := booking.ValidateBooking(); err != nil {
		return model.Appointment{}, err
	}

	seq := s.col.Begin()

	var wire model.AppointmentWire
	if err := s.client.Post(ctx, "/appointments", booking.ToBookingWire(), &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Appointment{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	created := model.AppointmentFromWire(wire)
	s.col.Apply(seq, func(items []model.Appointment) []model.Appointment {
		return append(items, created)
	})
	s.log.Debug("appointment created", "id", created.ID.String())
	return created, nil
}

// Update replaces an existing appointment, and refreshes the
// currently-viewed slot when it matches.
func (s *Store) Update(ctx context.Context, apt model.Appointment) (model.Appointment, error) {
	if apt.ID == "" {
		return model.Appointment{}, apperrors.Validation("appointment id is required")
	}
	apt.NumberOfPets = len(apt.Pets)
	if err := apt.ValidateBooking(); err != nil {
		return model.Appointment{}, err
	}

	seq := s.col.Begin()

	var wire model.AppointmentWire
	if err := s.client.Put(ctx, "/appointments/"+apt.ID.String(), apt.ToBookingWire(), &wire); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return model.Appointment{}, fmt.Errorf("failed to update appointment %s: %w", apt.ID, err)
	}

	updated := model.AppointmentFromWire(wire)
	s.col.Apply(seq, func(items []model.Appointment) []model.Appointment {
		for i := range items {
			if items[i].ID == updated.ID {
				items[i] = updated
			}
		}
		return items
	})
	s.setSelected(&updated)
	return updated, nil
}

// Delete cancels an appointment. On success the item leaves the
// collection and the currently-viewed slot is cleared if it matched;
// a failed delete leaves the collection unchanged and stores the
// error.
func (s *Store) Delete(ctx context.Context, id model.ID) error {
	seq := s.col.Begin()

	if err := s.client.Delete(ctx, "/appointments/"+id.String()); err != nil {
		s.col.Fail(seq, apperrors.Message(err))
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}

	s.col.Apply(seq, func(items []model.Appointment) []model.Appointment {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept
	})

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()

	s.log.Debug("appointment deleted", "id", id.String())
	return nil
}

// Appointments returns the current collection state.
func (s *Store) Appointments() store.Snapshot[model.Appointment] {
	return s.col.Snapshot()
}

// Selected returns the currently viewed appointment, if any.
func (s *Store) Selected() (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return model.Appointment{}, false
	}
	return *s.selected, true
}

func (s *Store) setSelected(apt *model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = apt
}
