package model

// Pet is a registered pet owned by the authenticated account.
type Pet struct {
	ID         ID
	Type       string
	Name       string
	Gender     string
	IsNeutered bool
	Breed      string
	Birthday   string // YYYY-MM-DD
	Image      string // data URI, optional
}

// PetWire is the snake_case record on the /pet endpoints.
type PetWire struct {
	ID         ID     `json:"id,omitempty"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	IsNeutered bool   `json:"is_neutered"`
	Breed      string `json:"breed"`
	Birthday   string `json:"birthday"`
	Image      string `json:"image,omitempty"`
}

func PetFromWire(w PetWire) Pet {
	return Pet{
		ID:         w.ID,
		Type:       w.Type,
		Name:       w.Name,
		Gender:     w.Gender,
		IsNeutered: w.IsNeutered,
		Breed:      w.Breed,
		Birthday:   trimDate(w.Birthday),
		Image:      w.Image,
	}
}

func (p Pet) ToWire() PetWire {
	return PetWire{
		ID:         p.ID,
		Type:       p.Type,
		Name:       p.Name,
		Gender:     p.Gender,
		IsNeutered: p.IsNeutered,
		Breed:      p.Breed,
		Birthday:   p.Birthday,
		Image:      p.Image,
	}
}

// RegisterPetRequest is the client-side registration form.
type RegisterPetRequest struct {
	Type       string `json:"type" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Gender     string `json:"gender" validate:"required,oneof=male female"`
	IsNeutered bool   `json:"is_neutered"`
	Breed      string `json:"breed" validate:"required"`
	Birthday   string `json:"birthday" validate:"required,datetime=2006-01-02"`
	Image      string `json:"image,omitempty"`
}
