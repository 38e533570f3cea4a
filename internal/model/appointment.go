package model

type AppointmentStatus string

const (
	AppointmentStatusBooked AppointmentStatus = "booked"
	AppointmentStatusDraft  AppointmentStatus = "draft"
)

// TimeSlot marks the half of the day an appointment falls in.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "AM"
	TimeSlotAfternoon TimeSlot = "PM"
)

// PetSnapshot is the pet as captured on an appointment entry. A nil ID
// is the sentinel "unregistered pet" placeholder, allowed as a
// stand-in selection.
type PetSnapshot struct {
	ID         *ID
	Name       string
	Type       string
	Gender     string
	Age        string
	Weight     string
	IsNeutered bool
}

// SentinelPet returns the unregistered-pet placeholder.
func SentinelPet() PetSnapshot {
	return PetSnapshot{Name: "Unregistered pet"}
}

// Registered reports whether the snapshot references a registered pet.
func (p PetSnapshot) Registered() bool {
	return p.ID != nil
}

// AppointmentPet is one per-pet visit entry on an appointment.
type AppointmentPet struct {
	SelectedPet    *PetSnapshot
	PurposeOfVisit string
	Memo           string
}

// MemberInfo is the contact snapshot taken at booking time.
type MemberInfo struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

type Appointment struct {
	ID             ID
	Status         AppointmentStatus
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	TimeSlot       TimeSlot
	NumberOfPets   int
	Pets           []AppointmentPet
	MemberInfo     MemberInfo
	AgreedToPolicy bool
}

// AppointmentWire is the snake_case record returned by GET
// /appointments. The nested pet entries keep purposeOfVisit and memo
// in camelCase, matching the backend as it actually responds.
type AppointmentWire struct {
	ID              ID                   `json:"id"`
	Status          AppointmentStatus    `json:"status"`
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	TimeSlot        TimeSlot             `json:"time_slot"`
	NumberOfPets    int                  `json:"number_of_pets"`
	Pets            []AppointmentPetWire `json:"pets"`
	MemberFirstName string               `json:"member_first_name"`
	MemberLastName  string               `json:"member_last_name"`
	MemberPhone     string               `json:"member_phone"`
	AgreedToPolicy  bool                 `json:"agreed_to_policy"`
}

type AppointmentPetWire struct {
	ID             *ID    `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Gender         string `json:"gender"`
	Age            string `json:"age"`
	Weight         string `json:"weight"`
	IsNeutered     bool   `json:"is_neutered"`
	PurposeOfVisit string `json:"purposeOfVisit"`
	Memo           string `json:"memo"`
}

func AppointmentFromWire(w AppointmentWire) Appointment {
	pets := make([]AppointmentPet, 0, len(w.Pets))
	for _, p := range w.Pets {
		snapshot := PetSnapshot{
			ID:         p.ID,
			Name:       p.Name,
			Type:       p.Type,
			Gender:     p.Gender,
			Age:        p.Age,
			Weight:     p.Weight,
			IsNeutered: p.IsNeutered,
		}
		pets = append(pets, AppointmentPet{
			SelectedPet:    &snapshot,
			PurposeOfVisit: p.PurposeOfVisit,
			Memo:           p.Memo,
		})
	}
	return Appointment{
		ID:           w.ID,
		Status:       w.Status,
		Date:         trimDate(w.Date),
		Time:         w.Time,
		TimeSlot:     w.TimeSlot,
		NumberOfPets: w.NumberOfPets,
		Pets:         pets,
		MemberInfo: MemberInfo{
			FirstName:   w.MemberFirstName,
			LastName:    w.MemberLastName,
			PhoneNumber: w.MemberPhone,
		},
		AgreedToPolicy: w.AgreedToPolicy,
	}
}

// BookingWire is the payload POSTed and PUT to /appointments. Unlike
// the read side it is camelCase end to end.
type BookingWire struct {
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	TimeSlot       TimeSlot         `json:"timeSlot"`
	NumberOfPets   int              `json:"numberOfPets"`
	Pets           []BookingPetWire `json:"pets"`
	MemberInfo     MemberInfoWire   `json:"memberInfo"`
	AgreedToPolicy bool             `json:"agreedToPolicy"`
}

type BookingPetWire struct {
	SelectedPet    PetSnapshotWire `json:"selectedPet"`
	PurposeOfVisit string          `json:"purposeOfVisit"`
	Memo           string          `json:"memo"`
}

type PetSnapshotWire struct {
	ID         *ID    `json:"id"`
	Name       string `json:"name,omitempty"`
	Type       string `json:"type,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Age        string `json:"age,omitempty"`
	Weight     string `json:"weight,omitempty"`
	IsNeutered bool   `json:"is_neutered,omitempty"`
}

type MemberInfoWire struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (a Appointment) ToBookingWire() BookingWire {
	pets := make([]BookingPetWire, 0, len(a.Pets))
	for _, p := range a.Pets {
		var snapshot PetSnapshotWire
		if p.SelectedPet != nil {
			snapshot = PetSnapshotWire{
				ID:         p.SelectedPet.ID,
				Name:       p.SelectedPet.Name,
				Type:       p.SelectedPet.Type,
				Gender:     p.SelectedPet.Gender,
				Age:        p.SelectedPet.Age,
				Weight:     p.SelectedPet.Weight,
				IsNeutered: p.SelectedPet.IsNeutered,
			}
		}
		pets = append(pets, BookingPetWire{
			SelectedPet:    snapshot,
			PurposeOfVisit: p.PurposeOfVisit,
			Memo:           p.Memo,
		})
	}
	return BookingWire{
		Date:           a.Date,
		Time:           a.Time,
		TimeSlot:       a.TimeSlot,
		NumberOfPets:   a.NumberOfPets,
		Pets:           pets,
		MemberInfo: MemberInfoWire{
			FirstName:   a.MemberInfo.FirstName,
			LastName:    a.MemberInfo.LastName,
			PhoneNumber: a.MemberInfo.PhoneNumber,
		},
		AgreedToPolicy: a.AgreedToPolicy,
	}
}
