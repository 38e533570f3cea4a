package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
)

func validBooking() Appointment {
	id := ID("1")
	return Appointment{
		Date:     "2025-06-20",
		Time:     "10:00",
		TimeSlot: TimeSlotMorning,
		Pets: []AppointmentPet{{
			SelectedPet:    &PetSnapshot{ID: &id, Name: "Mochi"},
			PurposeOfVisit: "checkup",
			Memo:           "annual",
		}},
		MemberInfo:     MemberInfo{FirstName: "Dana", LastName: "Kim", PhoneNumber: "555-0100"},
		AgreedToPolicy: true,
	}
}

func TestValidateBooking(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Appointment)
		wantMsg string
	}{
		{"valid booking passes", func(a *Appointment) {}, ""},
		{
			"no pets",
			func(a *Appointment) { a.Pets = nil },
			"at least one pet is required",
		},
		{
			"missing pet selection",
			func(a *Appointment) { a.Pets[0].SelectedPet = nil },
			"please select a pet for Pet 1",
		},
		{
			"blank purpose",
			func(a *Appointment) { a.Pets[0].PurposeOfVisit = "   " },
			"please enter purpose of visit for Pet 1",
		},
		{
			"blank memo",
			func(a *Appointment) { a.Pets[0].Memo = "" },
			"please enter memo for Pet 1",
		},
		{
			"missing date",
			func(a *Appointment) { a.Date = "" },
			"please select an appointment date",
		},
		{
			"missing time",
			func(a *Appointment) { a.Time = "" },
			"please select an appointment time",
		},
		{
			"policy not acknowledged",
			func(a *Appointment) { a.AgreedToPolicy = false },
			"please agree to the cancellation policy before confirming",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := validBooking()
			tt.mutate(&apt)
			err := apt.ValidateBooking()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantMsg, apperrors.Message(err))
		})
	}
}

func TestValidateBookingRejectsDuplicateRegisteredPet(t *testing.T) {
	apt := validBooking()
	dup := apt.Pets[0]
	apt.Pets = append(apt.Pets, dup)

	err := apt.ValidateBooking()
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "this pet has already been added to the appointment", apperrors.Message(err))
}

func TestValidateBookingAllowsRepeatedSentinelPet(t *testing.T) {
	apt := validBooking()
	sentinel := SentinelPet()
	apt.Pets = append(apt.Pets,
		AppointmentPet{SelectedPet: &sentinel, PurposeOfVisit: "grooming", Memo: "walk-in"},
		AppointmentPet{SelectedPet: &sentinel, PurposeOfVisit: "nails", Memo: "walk-in"},
	)
	assert.NoError(t, apt.ValidateBooking())
}

func TestValidateRequests(t *testing.T) {
	assert.NoError(t, Validate(SendOTPRequest{Email: "a@b.co"}))

	err := Validate(SendOTPRequest{Email: "not-an-email"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "please enter a valid email address", apperrors.Message(err))

	err = Validate(VerifyOTPRequest{Email: "a@b.co", OTP: "12345"})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "please enter the complete 6-digit code", apperrors.Message(err))

	err = Validate(RegisterPetRequest{
		Type: "dog", Name: "Mochi", Gender: "male", Breed: "shiba", Birthday: "soon",
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Birthday must be a YYYY-MM-DD date", apperrors.Message(err))

	err = Validate(RegisterPetRequest{})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Type is required", apperrors.Message(err))
}
