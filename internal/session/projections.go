package session

import (
	"sort"

	"github.com/jwalitptl/petcare-portal/internal/model"
)

// The projections below are read-only joins re-derived on every call.
// They keep no state of their own and tolerate partially loaded
// collections: an entry whose pet has not been fetched yet renders a
// neutral placeholder instead of failing.

const unknownPetName = "Unknown pet"

// AppointmentEntryView joins one per-pet visit entry with the
// registered pet it references, when available.
type AppointmentEntryView struct {
	Entry   model.AppointmentPet
	Pet     *model.Pet
	PetName string
}

// AppointmentView is one appointment with its entries resolved.
type AppointmentView struct {
	Appointment model.Appointment
	Entries     []AppointmentEntryView
}

// AppointmentsWithPets resolves each appointment entry against the pet
// collection by id.
func (s *Session) AppointmentsWithPets() []AppointmentView {
	appointments := s.Appointments.Appointments().Items

	views := make([]AppointmentView, 0, len(appointments))
	for _, apt := range appointments {
		entries := make([]AppointmentEntryView, 0, len(apt.Pets))
		for _, entry := range apt.Pets {
			view := AppointmentEntryView{Entry: entry, PetName: unknownPetName}
			if entry.SelectedPet != nil {
				if entry.SelectedPet.Registered() {
					if p, ok := s.Pets.Get(*entry.SelectedPet.ID); ok {
						petCopy := p
						view.Pet = &petCopy
						view.PetName = p.Name
					} else if entry.SelectedPet.Name != "" {
						view.PetName = entry.SelectedPet.Name
					}
				} else {
					view.PetName = entry.SelectedPet.Name
				}
			}
			entries = append(entries, view)
		}
		views = append(views, AppointmentView{Appointment: apt, Entries: entries})
	}
	return views
}

// PetRecordsView groups one pet's medical records within a day.
type PetRecordsView struct {
	PetID   model.ID
	PetName string
	Records []model.MedicalRecord
}

// DayRecordsView groups medical records for one calendar day.
type DayRecordsView struct {
	Date string
	Pets []PetRecordsView
}

// MedicalRecordsByDay groups the medical record collection by calendar
// day, newest day first, then by pet within each day.
func (s *Session) MedicalRecordsByDay() []DayRecordsView {
	records := s.Medical.Records().Items

	byDay := make(map[string]map[model.ID][]model.MedicalRecord)
	for _, r := range records {
		if byDay[r.Date] == nil {
			byDay[r.Date] = make(map[model.ID][]model.MedicalRecord)
		}
		byDay[r.Date][r.PetID] = append(byDay[r.Date][r.PetID], r)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	views := make([]DayRecordsView, 0, len(days))
	for _, day := range days {
		byPet := byDay[day]
		petIDs := make([]string, 0, len(byPet))
		for id := range byPet {
			petIDs = append(petIDs, id.String())
		}
		sort.Strings(petIDs)

		pets := make([]PetRecordsView, 0, len(petIDs))
		for _, idStr := range petIDs {
			id := model.ID(idStr)
			name := unknownPetName
			if p, ok := s.Pets.Get(id); ok {
				name = p.Name
			}
			pets = append(pets, PetRecordsView{
				PetID:   id,
				PetName: name,
				Records: byPet[id],
			})
		}
		views = append(views, DayRecordsView{Date: day, Pets: pets})
	}
	return views
}

// VaccineView is one vaccine with its display-time due date and owning
// pet resolved.
type VaccineView struct {
	Vaccine model.Vaccine
	DueDate string
	PetName string
}

// VaccinesWithDueDates resolves each vaccine against the pet
// collection and derives its due date.
func (s *Session) VaccinesWithDueDates() []VaccineView {
	vaccines := s.Vaccines.Vaccines().Items

	views := make([]VaccineView, 0, len(vaccines))
	for _, v := range vaccines {
		name := unknownPetName
		if p, ok := s.Pets.Get(v.PetID); ok {
			name = p.Name
		}
		views = append(views, VaccineView{
			Vaccine: v,
			DueDate: v.DueDate(),
			PetName: name,
		})
	}
	return views
}
