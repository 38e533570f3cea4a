package model

type HistoryPhoto struct {
	Type string
	URL  string
}

// VaccineHistory is one treatment entry under a vaccine record. PetID
// is denormalized from the parent vaccine.
type VaccineHistory struct {
	ID               ID
	VaccineID        ID
	PetID            ID
	TreatmentInfo    string
	DateAdministered string // YYYY-MM-DD
	Photos           []HistoryPhoto
}

type VaccineHistoryWire struct {
	ID               ID                 `json:"id,omitempty"`
	VaccineID        ID                 `json:"vaccine_id,omitempty"`
	PetID            ID                 `json:"pet_id"`
	TreatmentInfo    string             `json:"treatment_info"`
	DateAdministered string             `json:"date_administered"`
	Photos           []HistoryPhotoWire `json:"photos"`
}

type HistoryPhotoWire struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func VaccineHistoryFromWire(w VaccineHistoryWire) VaccineHistory {
	photos := make([]HistoryPhoto, 0, len(w.Photos))
	for _, p := range w.Photos {
		photos = append(photos, HistoryPhoto{Type: p.Type, URL: p.URL})
	}
	return VaccineHistory{
		ID:               w.ID,
		VaccineID:        w.VaccineID,
		PetID:            w.PetID,
		TreatmentInfo:    w.TreatmentInfo,
		DateAdministered: trimDate(w.DateAdministered),
		Photos:           photos,
	}
}

func (h VaccineHistory) ToWire() VaccineHistoryWire {
	photos := make([]HistoryPhotoWire, 0, len(h.Photos))
	for _, p := range h.Photos {
		photos = append(photos, HistoryPhotoWire{Type: p.Type, URL: p.URL})
	}
	return VaccineHistoryWire{
		ID:               h.ID,
		VaccineID:        h.VaccineID,
		PetID:            h.PetID,
		TreatmentInfo:    h.TreatmentInfo,
		DateAdministered: h.DateAdministered,
		Photos:           photos,
	}
}

type CreateVaccineHistoryRequest struct {
	VaccineID        ID     `validate:"required"`
	PetID            ID     `validate:"required"`
	TreatmentInfo    string `validate:"required"`
	DateAdministered string `validate:"required,datetime=2006-01-02"`
	Photos           []HistoryPhoto
}

// ToWire builds the POST body. The vaccine id travels in the URL, not
// the payload.
func (r CreateVaccineHistoryRequest) ToWire() VaccineHistoryWire {
	w := VaccineHistory{
		PetID:            r.PetID,
		TreatmentInfo:    r.TreatmentInfo,
		DateAdministered: r.DateAdministered,
		Photos:           r.Photos,
	}.ToWire()
	w.VaccineID = ""
	return w
}
