package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/petcare-portal/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request struct against its validate tags and
// converts the first failure into a validation error with an inline
// message, so no network call is attempted on bad input.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation(err.Error())
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperrors.Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return apperrors.Validation("please enter a valid email address")
	case "datetime":
		return apperrors.Validation(fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field()))
	case "len", "numeric":
		return apperrors.Validation("please enter the complete 6-digit code")
	default:
		return apperrors.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// ValidateBooking enforces the booking form rules before submission:
// a non-empty pet list, a pet, purpose and memo on every entry, no
// registered pet selected twice, and the cancellation policy
// acknowledged. The sentinel unregistered pet may repeat.
func (a Appointment) ValidateBooking() error {
	if len(a.Pets) == 0 {
		return apperrors.Validation("at least one pet is required")
	}
	seen := make(map[ID]bool, len(a.Pets))
	for i, entry := range a.Pets {
		n := i + 1
		if entry.SelectedPet == nil {
			return apperrors.Validation(fmt.Sprintf("please select a pet for Pet %d", n))
		}
		if strings.TrimSpace(entry.PurposeOfVisit) == "" {
			return apperrors.Validation(fmt.Sprintf("please enter purpose of visit for Pet %d", n))
		}
		if strings.TrimSpace(entry.Memo) == "" {
			return apperrors.Validation(fmt.Sprintf("please enter memo for Pet %d", n))
		}
		if entry.SelectedPet.Registered() {
			id := *entry.SelectedPet.ID
			if seen[id] {
				return apperrors.Validation("this pet has already been added to the appointment")
			}
			seen[id] = true
		}
	}
	if a.Date == "" {
		return apperrors.Validation("please select an appointment date")
	}
	if a.Time == "" {
		return apperrors.Validation("please select an appointment time")
	}
	if !a.AgreedToPolicy {
		return apperrors.Validation("please agree to the cancellation policy before confirming")
	}
	return nil
}
