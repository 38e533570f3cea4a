// Package session assembles the client-side store. One Session is
// constructed per process/session and passed by reference to every
// consumer; teardown is dropping the reference. There is no ambient
// singleton.
package session

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/jwalitptl/petcare-portal/config"
	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/internal/store/appointment"
	"github.com/jwalitptl/petcare-portal/internal/store/auth"
	"github.com/jwalitptl/petcare-portal/internal/store/blockedslot"
	"github.com/jwalitptl/petcare-portal/internal/store/medical"
	"github.com/jwalitptl/petcare-portal/internal/store/pet"
	"github.com/jwalitptl/petcare-portal/internal/store/user"
	"github.com/jwalitptl/petcare-portal/internal/store/vaccine"
	"github.com/jwalitptl/petcare-portal/internal/store/vaccinehistory"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
	"github.com/jwalitptl/petcare-portal/pkg/token"
)

// Session owns one instance of every entity store, all sharing one
// API client and one persisted credential pair.
type Session struct {
	Auth           *auth.Store
	User           *user.Store
	Pets           *pet.Store
	Appointments   *appointment.Store
	Medical        *medical.Store
	Vaccines       *vaccine.Store
	VaccineHistory *vaccinehistory.Store
	BlockedSlots   *blockedslot.Store

	client *apiclient.Client
	tokens *token.Store
	log    *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, onAuthFailure func()) (*Session, error) {
	tokens, err := token.NewStore(cfg.Token.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}

	client := apiclient.New(apiclient.Config{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.RequestTimeout,
		Limiter:       limiter,
		OnAuthFailure: onAuthFailure,
	}, tokens, log, m)

	return NewWithClient(cfg, client, tokens, log, m), nil
}

// NewWithClient wires the stores around an existing client, used by
// tests that inject a transport.
func NewWithClient(cfg *config.Config, client *apiclient.Client, tokens *token.Store, log *logger.Logger, m *metrics.Metrics) *Session {
	return &Session{
		Auth:           auth.NewStore(client, tokens, log),
		User:           user.NewStore(client, log),
		Pets:           pet.NewStore(client, log, m),
		Appointments:   appointment.NewStore(client, log, m),
		Medical:        medical.NewStore(client, log, m),
		Vaccines:       vaccine.NewStore(client, log, m),
		VaccineHistory: vaccinehistory.NewStore(client, log, m),
		BlockedSlots:   blockedslot.NewStore(client, log, cfg.Booking.BlockedSlotLimit, cfg.Booking.BlockedSlotTTL),
		client:         client,
		tokens:         tokens,
		log:            log,
	}
}

// Logout clears the persisted credentials and the profile singleton.
func (s *Session) Logout() error {
	s.User.Clear()
	return s.Auth.Logout()
}

// UpcomingEvents fetches the merged appointment/vaccine reminder feed
// for the signed-in profile.
func (s *Session) UpcomingEvents(ctx context.Context) ([]model.UpcomingEvent, error) {
	profile, ok := s.User.Profile()
	if !ok {
		return nil, fmt.Errorf("no profile loaded")
	}

	var wire []model.UpcomingEventWire
	if err := s.client.Get(ctx, "/upcoming-events/"+profile.ID.String(), &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}

	events := make([]model.UpcomingEvent, 0, len(wire))
	for _, w := range wire {
		events = append(events, model.UpcomingEventFromWire(w))
	}
	return events, nil
}
