package model

import "time"

// Due dates are currently a fixed annual cycle from the vaccination
// date. TODO: replace with per-vaccine-type cycles once the clinic
// confirms the business rule.
const vaccineDueCycle = 1 // years

type Vaccine struct {
	ID                   ID
	PetID                ID
	VaccineType          string
	VaccineName          string
	VaccinationDate      string // YYYY-MM-DD
	NumberOfVaccinations int
	Veterinarian         string
	Notes                string
	Images               []string
}

// DueDate derives the next due date from the vaccination date. It is
// computed at display time, never stored. An unparseable vaccination
// date yields the vaccination date itself.
func (v Vaccine) DueDate() string {
	t, err := time.Parse("2006-01-02", v.VaccinationDate)
	if err != nil {
		return v.VaccinationDate
	}
	return t.AddDate(vaccineDueCycle, 0, 0).Format("2006-01-02")
}

type VaccineWire struct {
	ID                   ID       `json:"id,omitempty"`
	PetID                ID       `json:"pet_id"`
	VaccineType          string   `json:"vaccine_type"`
	VaccineName          string   `json:"vaccine_name"`
	VaccinationDate      string   `json:"vaccination_date"`
	NumberOfVaccinations int      `json:"number_of_vaccinations,omitempty"`
	Veterinarian         string   `json:"veterinarian,omitempty"`
	Notes                string   `json:"notes,omitempty"`
	Images               []string `json:"images,omitempty"`
}

func VaccineFromWire(w VaccineWire) Vaccine {
	images := w.Images
	if images == nil {
		images = []string{}
	}
	return Vaccine{
		ID:                   w.ID,
		PetID:                w.PetID,
		VaccineType:          w.VaccineType,
		VaccineName:          w.VaccineName,
		VaccinationDate:      trimDate(w.VaccinationDate),
		NumberOfVaccinations: w.NumberOfVaccinations,
		Veterinarian:         w.Veterinarian,
		Notes:                w.Notes,
		Images:               images,
	}
}

func (v Vaccine) ToWire() VaccineWire {
	return VaccineWire{
		ID:                   v.ID,
		PetID:                v.PetID,
		VaccineType:          v.VaccineType,
		VaccineName:          v.VaccineName,
		VaccinationDate:      v.VaccinationDate,
		NumberOfVaccinations: v.NumberOfVaccinations,
		Veterinarian:         v.Veterinarian,
		Notes:                v.Notes,
		Images:               v.Images,
	}
}

type CreateVaccineRequest struct {
	PetID                ID     `validate:"required"`
	VaccineType          string `validate:"required"`
	VaccineName          string `validate:"required"`
	VaccinationDate      string `validate:"required,datetime=2006-01-02"`
	NumberOfVaccinations int    `validate:"gte=0"`
	Veterinarian         string
	Notes                string
	Images               []string
}

func (r CreateVaccineRequest) ToWire() VaccineWire {
	return Vaccine{
		PetID:                r.PetID,
		VaccineType:          r.VaccineType,
		VaccineName:          r.VaccineName,
		VaccinationDate:      r.VaccinationDate,
		NumberOfVaccinations: r.NumberOfVaccinations,
		Veterinarian:         r.Veterinarian,
		Notes:                r.Notes,
		Images:               r.Images,
	}.ToWire()
}
