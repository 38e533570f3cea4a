package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/petcare-portal/config"
	"github.com/jwalitptl/petcare-portal/internal/mockapi"
	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/apiclient"
	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
	"github.com/jwalitptl/petcare-portal/pkg/token"
)

// countingTransport records every request path so tests can assert
// which calls actually hit the network.
type countingTransport struct {
	next http.RoundTripper

	mu    sync.Mutex
	paths []string
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.paths = append(t.paths, req.Method+" "+req.URL.Path)
	t.mu.Unlock()
	return t.next.RoundTrip(req)
}

func (t *countingTransport) count(prefix string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, p := range t.paths {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	return n
}

type fixture struct {
	sess      *Session
	server    *mockapi.Server
	srv       *httptest.Server
	transport *countingTransport
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{
		Booking: config.BookingConfig{
			BlockedSlotTTL:   time.Minute,
			BlockedSlotLimit: 100,
		},
		MockAPI: config.MockAPIConfig{
			JWTSecret:     "test-secret",
			RefreshSecret: "test-refresh-secret",
		},
	}

	log := logger.NewLogger(nil)
	backend := mockapi.NewServer(cfg.MockAPI, log)
	srv := httptest.NewServer(backend.Router())
	t.Cleanup(srv.Close)

	tokens, err := token.NewStore(filepath.Join(t.TempDir(), "tokens.json"))
	require.NoError(t, err)

	transport := &countingTransport{next: http.DefaultTransport}
	m := metrics.New("test")
	client := apiclient.New(apiclient.Config{
		BaseURL:   srv.URL,
		Transport: transport,
	}, tokens, log, m)

	return &fixture{
		sess:      NewWithClient(cfg, client, tokens, log, m),
		server:    backend,
		srv:       srv,
		transport: transport,
	}
}

// login walks the OTP flow. The mock surfaces the generated code in its
// dev response, so the test re-requests one directly to read it.
func (f *fixture) login(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.sess.Auth.SendOTP(ctx, email))

	resp, err := http.Post(f.srv.URL+"/auth/send-otp", "application/json",
		strings.NewReader(`{"email":"`+email+`"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		DebugOTP string `json:"debug_otp"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.DebugOTP, 6)

	require.NoError(t, f.sess.Auth.VerifyOTP(ctx, body.DebugOTP))
	require.True(t, f.sess.Auth.Authenticated())
}

func TestLoginProfileAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.False(t, f.sess.Auth.Authenticated())
	f.login(t, "dana@example.com")

	profile, err := f.sess.User.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", profile.Email)

	updated, err := f.sess.User.Update(ctx, model.UpdateProfileRequest{
		FirstName: "Dana",
		LastName:  "Kim",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", updated.FirstName)

	require.NoError(t, f.sess.Logout())
	assert.False(t, f.sess.Auth.Authenticated())
	_, ok := f.sess.User.Profile()
	assert.False(t, ok)
}

func TestWrongOTPIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.sess.Auth.SendOTP(ctx, "dana@example.com"))
	err := f.sess.Auth.VerifyOTP(ctx, "000000")
	require.Error(t, err)
	assert.False(t, f.sess.Auth.Authenticated())
	assert.NotEmpty(t, f.sess.Auth.Err())
}

func TestPetRegistrationAndFetch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	created, err := f.sess.Pets.Register(ctx, model.RegisterPetRequest{
		Type:     "dog",
		Name:     "Mochi",
		Gender:   "male",
		Breed:    "shiba",
		Birthday: "2020-03-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	assert.Len(t, f.sess.Pets.Pets().Items, 1)

	// A fresh fetch converges to the same server state.
	pets, err := f.sess.Pets.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "Mochi", pets[0].Name)

	got, ok := f.sess.Pets.Get(created.ID)
	assert.True(t, ok)
	assert.Equal(t, created.ID, got.ID)

	// Validation failures never reach the network.
	before := f.transport.count("POST /pet")
	_, err = f.sess.Pets.Register(ctx, model.RegisterPetRequest{Name: "NoType"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, before, f.transport.count("POST /pet"))
}

func booking(petID model.ID) model.Appointment {
	return model.Appointment{
		Date:     "2025-07-20",
		Time:     "10:00",
		TimeSlot: model.TimeSlotMorning,
		Pets: []model.AppointmentPet{{
			SelectedPet:    &model.PetSnapshot{ID: &petID, Name: "Mochi"},
			PurposeOfVisit: "checkup",
			Memo:           "annual",
		}},
		MemberInfo:     model.MemberInfo{FirstName: "Dana", LastName: "Kim", PhoneNumber: "555-0100"},
		AgreedToPolicy: true,
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	pet, err := f.sess.Pets.Register(ctx, model.RegisterPetRequest{
		Type: "dog", Name: "Mochi", Gender: "male", Breed: "shiba", Birthday: "2020-03-01",
	})
	require.NoError(t, err)

	created, err := f.sess.Appointments.Create(ctx, booking(pet.ID))
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusBooked, created.Status)
	assert.Equal(t, 1, created.NumberOfPets)

	fetched, err := f.sess.Appointments.FetchOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "checkup", fetched.Pets[0].PurposeOfVisit)
	selected, ok := f.sess.Appointments.Selected()
	assert.True(t, ok)
	assert.Equal(t, created.ID, selected.ID)

	reschedule := fetched
	reschedule.Time = "11:00"
	updated, err := f.sess.Appointments.Update(ctx, reschedule)
	require.NoError(t, err)
	assert.Equal(t, "11:00", updated.Time)

	// Fetching twice against unchanged backend state converges.
	first, err := f.sess.Appointments.FetchAll(ctx)
	require.NoError(t, err)
	second, err := f.sess.Appointments.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Deleting an id the server does not know leaves state untouched
	// and stores the error.
	err = f.sess.Appointments.Delete(ctx, "no-such-id")
	require.Error(t, err)
	assert.Len(t, f.sess.Appointments.Appointments().Items, 1)
	assert.NotEmpty(t, f.sess.Appointments.Appointments().Err)

	require.NoError(t, f.sess.Appointments.Delete(ctx, created.ID))
	assert.Empty(t, f.sess.Appointments.Appointments().Items)
	_, ok = f.sess.Appointments.Selected()
	assert.False(t, ok, "deleting the viewed appointment clears the selection")
}

func TestDuplicatePetBookingNeverReachesNetwork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	petID := model.ID("1")
	apt := booking(petID)
	apt.Pets = append(apt.Pets, apt.Pets[0])

	before := f.transport.count("POST /appointments")
	_, err := f.sess.Appointments.Create(ctx, apt)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "this pet has already been added to the appointment", apperrors.Message(err))
	assert.Equal(t, before, f.transport.count("POST /appointments"))
}

func TestVaccineHistoryIsMemoizedPerVaccine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	vaccine, err := f.sess.Vaccines.Create(ctx, model.CreateVaccineRequest{
		PetID:           "1",
		VaccineType:     "core",
		VaccineName:     "rabies",
		VaccinationDate: "2025-02-10",
	})
	require.NoError(t, err)

	_, err = f.sess.VaccineHistory.Create(ctx, model.CreateVaccineHistoryRequest{
		VaccineID:        vaccine.ID,
		PetID:            "1",
		TreatmentInfo:    "booster",
		DateAdministered: "2025-02-10",
	})
	require.NoError(t, err)

	historyPath := "GET /vaccines/" + vaccine.ID.String() + "/history"

	// The create memoized the partition, so even the first Fetch stays
	// local; repeated expands never refetch.
	entries, err := f.sess.VaccineHistory.Fetch(ctx, vaccine.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	entries, err = f.sess.VaccineHistory.Fetch(ctx, vaccine.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, f.transport.count(historyPath))

	// A different vaccine is its own partition and does fetch.
	other, err := f.sess.Vaccines.Create(ctx, model.CreateVaccineRequest{
		PetID:           "1",
		VaccineType:     "core",
		VaccineName:     "distemper",
		VaccinationDate: "2025-03-01",
	})
	require.NoError(t, err)
	_, cached := f.sess.VaccineHistory.Histories(other.ID)
	assert.False(t, cached, "partition absent before the first fetch")
	entries, err = f.sess.VaccineHistory.Fetch(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, cached = f.sess.VaccineHistory.Histories(other.ID)
	assert.True(t, cached, "empty history is memoized distinctly from never-fetched")
	assert.Equal(t, 1, f.transport.count("GET /vaccines/"+other.ID.String()+"/history"))
}

func TestBlockedSlotsAreCachedPerSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	slotTime := "14:00:00"
	f.server.SeedBlockedSlots([]model.BlockedSlot{
		{ID: "1", Date: "2025-07-20"},
		{ID: "2", Date: "2025-07-21", Time: &slotTime},
	})

	slots, err := f.sess.BlockedSlots.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].WholeDay())
	assert.False(t, slots[1].WholeDay())

	_, err = f.sess.BlockedSlots.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.transport.count("GET /admin/blocked_slot"))

	f.sess.BlockedSlots.Invalidate()
	_, err = f.sess.BlockedSlots.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.transport.count("GET /admin/blocked_slot"))
}

func TestMedicalRecordsGroupedByDayThenPet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	pet, err := f.sess.Pets.Register(ctx, model.RegisterPetRequest{
		Type: "cat", Name: "Bean", Gender: "female", Breed: "tabby", Birthday: "2021-05-05",
	})
	require.NoError(t, err)

	for _, rec := range []model.CreateMedicalRecordRequest{
		{PetID: pet.ID, Title: "Skin check", Date: "2025-06-01"},
		{PetID: pet.ID, Title: "Follow-up", Date: "2025-06-10"},
		{PetID: "unknown-pet", Title: "Old transfer", Date: "2025-06-10"},
	} {
		_, err := f.sess.Medical.Create(ctx, rec)
		require.NoError(t, err)
	}

	groups := f.sess.MedicalRecordsByDay()
	require.Len(t, groups, 2)
	assert.Equal(t, "2025-06-10", groups[0].Date, "newest day first")
	assert.Len(t, groups[0].Pets, 2)
	assert.Equal(t, "2025-06-01", groups[1].Date)

	// Records for a pet the session has not loaded render a
	// placeholder, not an error.
	names := []string{groups[0].Pets[0].PetName, groups[0].Pets[1].PetName}
	assert.Contains(t, names, "Bean")
	assert.Contains(t, names, "Unknown pet")
}

func TestAppointmentsWithPetsProjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	pet, err := f.sess.Pets.Register(ctx, model.RegisterPetRequest{
		Type: "dog", Name: "Mochi", Gender: "male", Breed: "shiba", Birthday: "2020-03-01",
	})
	require.NoError(t, err)

	_, err = f.sess.Appointments.Create(ctx, booking(pet.ID))
	require.NoError(t, err)

	views := f.sess.AppointmentsWithPets()
	require.Len(t, views, 1)
	require.Len(t, views[0].Entries, 1)
	assert.Equal(t, "Mochi", views[0].Entries[0].PetName)
	require.NotNil(t, views[0].Entries[0].Pet)
	assert.Equal(t, pet.ID, views[0].Entries[0].Pet.ID)
}

func TestUpcomingEventsFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	_, err := f.sess.User.Fetch(ctx)
	require.NoError(t, err)

	pet, err := f.sess.Pets.Register(ctx, model.RegisterPetRequest{
		Type: "dog", Name: "Mochi", Gender: "male", Breed: "shiba", Birthday: "2020-03-01",
	})
	require.NoError(t, err)
	_, err = f.sess.Appointments.Create(ctx, booking(pet.ID))
	require.NoError(t, err)
	_, err = f.sess.Vaccines.Create(ctx, model.CreateVaccineRequest{
		PetID:           pet.ID,
		VaccineType:     "core",
		VaccineName:     "rabies",
		VaccinationDate: "2025-02-10",
	})
	require.NoError(t, err)

	events, err := f.sess.UpcomingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)

	types := []model.EventType{events[0].Type, events[1].Type}
	assert.Contains(t, types, model.EventTypeAppointment)
	assert.Contains(t, types, model.EventTypeVaccine)
}

func TestVaccinesWithDueDatesProjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "dana@example.com")

	_, err := f.sess.Vaccines.Create(ctx, model.CreateVaccineRequest{
		PetID:           "9",
		VaccineType:     "core",
		VaccineName:     "rabies",
		VaccinationDate: "2025-02-10",
	})
	require.NoError(t, err)

	views := f.sess.VaccinesWithDueDates()
	require.Len(t, views, 1)
	assert.Equal(t, "2026-02-10", views[0].DueDate)
	assert.Equal(t, "Unknown pet", views[0].PetName)
}
