package model

// BlockedSlot is a server-declared unavailable calendar day or time.
// A nil Time blocks the entire day. Read-only on the client.
type BlockedSlot struct {
	ID     ID
	Date   string // YYYY-MM-DD
	Time   *string
	Reason string
}

// WholeDay reports whether the slot blocks the full day.
func (s BlockedSlot) WholeDay() bool {
	return s.Time == nil
}

type BlockedSlotWire struct {
	ID     ID      `json:"id"`
	Date   string  `json:"date"`
	Time   *string `json:"time"`
	Reason string  `json:"reason,omitempty"`
}

// BlockedSlotEnvelope wraps GET /admin/blocked_slot responses.
type BlockedSlotEnvelope struct {
	Data []BlockedSlotWire `json:"data"`
}

func BlockedSlotFromWire(w BlockedSlotWire) BlockedSlot {
	return BlockedSlot{
		ID:     w.ID,
		Date:   trimDate(w.Date),
		Time:   w.Time,
		Reason: w.Reason,
	}
}
