package model

type EventType string

const (
	EventTypeAppointment EventType = "appointment"
	EventTypeVaccine     EventType = "vaccine"
)

// UpcomingEvent is one entry of the merged appointment/vaccine
// reminder feed.
type UpcomingEvent struct {
	ID              ID
	Type            EventType
	Title           string
	Description     string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM:SS, may be empty
	AppointmentID   ID
	VaccineRecordID ID
}

type UpcomingEventWire struct {
	ID              ID        `json:"id"`
	EventType       EventType `json:"event_type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       string    `json:"event_date"`
	EventTime       string    `json:"event_time"`
	AppointmentID   ID        `json:"appointment_id,omitempty"`
	VaccineRecordID ID        `json:"vaccine_record_id,omitempty"`
}

func UpcomingEventFromWire(w UpcomingEventWire) UpcomingEvent {
	return UpcomingEvent{
		ID:              w.ID,
		Type:            w.EventType,
		Title:           w.Title,
		Description:     w.Description,
		Date:            trimDate(w.EventDate),
		Time:            w.EventTime,
		AppointmentID:   w.AppointmentID,
		VaccineRecordID: w.VaccineRecordID,
	}
}
