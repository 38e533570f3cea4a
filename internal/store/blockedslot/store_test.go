package blockedslot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
	"github.com/jwalitptl/petcare-portal/pkg/token"
)

func newStore(t *testing.T, baseURL string) *Store {
	t.Helper()
	tokens, err := token.NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)
	log := logger.NewLogger(nil)
	client := apiclient.New(apiclient.Config{BaseURL: baseURL}, tokens, log, metrics.New("test"))
	return NewStore(client, log, 100, time.Minute)
}

func envelope() model.BlockedSlotEnvelope {
	return model.BlockedSlotEnvelope{Data: []model.BlockedSlotWire{{ID: "1", Date: "2025-07-20"}}}
}

func TestFetchIsCachedWithinTTL(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(envelope())
	}))
	defer srv.Close()

	s := newStore(t, srv.URL)
	ctx := context.Background()

	slots, err := s.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	_, err = s.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	s.Invalidate()
	_, err = s.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheHitClearsErrorFromSupersededFetch(t *testing.T) {
	// Two fetches race on a cold cache: the slow one fails after the
	// fast one has already filled the cache, leaving a stored error
	// behind fresh data. The next cache hit must not keep reporting it.
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(envelope())
	}))
	defer srv.Close()

	s := newStore(t, srv.URL)
	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		_, err := s.Fetch(ctx)
		slowDone <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	slots, err := s.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	close(release)
	require.Error(t, <-slowDone)
	assert.NotEmpty(t, s.Err())

	slots, err = s.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Empty(t, s.Err(), "a cache hit clears the superseded failure")
	assert.Equal(t, int32(2), calls.Load(), "the cache hit stays local")
}
