package model

// Uploader tags who attached a photo to a medical record.
type Uploader string

const (
	UploaderUser     Uploader = "user"
	UploaderHospital Uploader = "hospital"
)

type MedicalPhoto struct {
	ImageData  string
	UploadedBy Uploader
}

type MedicalRecord struct {
	ID              ID
	PetID           ID
	Title           string
	Date            string // YYYY-MM-DD
	UserDetails     string
	HospitalDetails string
	Photos          []MedicalPhoto
}

// MedicalRecordWire is the record on /medical-records. Photo entries
// keep their camelCase keys.
type MedicalRecordWire struct {
	ID              ID                 `json:"id,omitempty"`
	PetID           ID                 `json:"pet_id"`
	Title           string             `json:"title"`
	Date            string             `json:"date"`
	UserDetails     string             `json:"user_details,omitempty"`
	HospitalDetails string             `json:"hospital_details,omitempty"`
	Photos          []MedicalPhotoWire `json:"photos"`
}

type MedicalPhotoWire struct {
	ImageData  string   `json:"imageData"`
	UploadedBy Uploader `json:"uploadedBy"`
}

func MedicalRecordFromWire(w MedicalRecordWire) MedicalRecord {
	photos := make([]MedicalPhoto, 0, len(w.Photos))
	for _, p := range w.Photos {
		photos = append(photos, MedicalPhoto{
			ImageData:  p.ImageData,
			UploadedBy: p.UploadedBy,
		})
	}
	return MedicalRecord{
		ID:              w.ID,
		PetID:           w.PetID,
		Title:           w.Title,
		Date:            trimDate(w.Date),
		UserDetails:     w.UserDetails,
		HospitalDetails: w.HospitalDetails,
		Photos:          photos,
	}
}

func (r MedicalRecord) ToWire() MedicalRecordWire {
	photos := make([]MedicalPhotoWire, 0, len(r.Photos))
	for _, p := range r.Photos {
		photos = append(photos, MedicalPhotoWire{
			ImageData:  p.ImageData,
			UploadedBy: p.UploadedBy,
		})
	}
	return MedicalRecordWire{
		ID:              r.ID,
		PetID:           r.PetID,
		Title:           r.Title,
		Date:            r.Date,
		UserDetails:     r.UserDetails,
		HospitalDetails: r.HospitalDetails,
		Photos:          photos,
	}
}

// CreateMedicalRecordRequest is the new-record form. Only the detail
// text and photo list are mutable after creation.
type CreateMedicalRecordRequest struct {
	PetID       ID             `validate:"required"`
	Title       string         `validate:"required"`
	Date        string         `validate:"required,datetime=2006-01-02"`
	UserDetails string
	Photos      []MedicalPhoto
}

func (r CreateMedicalRecordRequest) ToWire() MedicalRecordWire {
	return MedicalRecord{
		PetID:       r.PetID,
		Title:       r.Title,
		Date:        r.Date,
		UserDetails: r.UserDetails,
		Photos:      r.Photos,
	}.ToWire()
}
