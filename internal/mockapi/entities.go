package mockapi

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/petcare-portal/internal/model"
)

func (s *Server) listPets(c *gin.Context) {
	s.mu.RLock()
	wire := make([]model.PetWire, 0, len(s.pets))
	for _, p := range s.pets {
		wire = append(wire, p.ToWire())
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, wire)
}

func (s *Server) createPet(c *gin.Context) {
	var w model.PetWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if w.Name == "" || w.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and type are required"})
		return
	}

	pet := model.PetFromWire(w)
	pet.ID = newID()

	s.mu.Lock()
	s.pets = append(s.pets, pet)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, pet.ToWire())
}

func (s *Server) listAppointments(c *gin.Context) {
	s.mu.RLock()
	wire := make([]model.AppointmentWire, 0, len(s.appointments))
	for _, a := range s.appointments {
		wire = append(wire, appointmentToWire(a))
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, wire)
}

func (s *Server) getAppointment(c *gin.Context) {
	id := model.ID(c.Param("id"))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			c.JSON(http.StatusOK, appointmentToWire(a))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
}

func (s *Server) createAppointment(c *gin.Context) {
	var w model.BookingWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if w.Date == "" || w.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and time are required"})
		return
	}

	apt := bookingToAppointment(w)
	apt.ID = newID()
	apt.Status = model.AppointmentStatusBooked

	s.mu.Lock()
	s.appointments = append(s.appointments, apt)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, appointmentToWire(apt))
}

func (s *Server) updateAppointment(c *gin.Context) {
	id := model.ID(c.Param("id"))
	var w model.BookingWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	apt := bookingToAppointment(w)
	apt.ID = id
	apt.Status = model.AppointmentStatusBooked

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i] = apt
			c.JSON(http.StatusOK, appointmentToWire(apt))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
}

func (s *Server) deleteAppointment(c *gin.Context) {
	id := model.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "appointment cancelled"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
}

func (s *Server) listMedicalRecords(c *gin.Context) {
	s.mu.RLock()
	wire := make([]model.MedicalRecordWire, 0, len(s.medical))
	for _, r := range s.medical {
		wire = append(wire, r.ToWire())
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, wire)
}

func (s *Server) createMedicalRecord(c *gin.Context) {
	var w model.MedicalRecordWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if w.Title == "" || w.Date == "" || w.PetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_id, title and date are required"})
		return
	}

	rec := model.MedicalRecordFromWire(w)
	rec.ID = newID()

	s.mu.Lock()
	s.medical = append(s.medical, rec)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, rec.ToWire())
}

func (s *Server) updateMedicalRecord(c *gin.Context) {
	id := model.ID(c.Param("id"))
	var w model.MedicalRecordWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec := model.MedicalRecordFromWire(w)
	rec.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.medical {
		if s.medical[i].ID == id {
			s.medical[i] = rec
			c.JSON(http.StatusOK, rec.ToWire())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "medical record not found"})
}

func (s *Server) deleteMedicalRecord(c *gin.Context) {
	id := model.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.medical {
		if s.medical[i].ID == id {
			s.medical = append(s.medical[:i], s.medical[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "medical record deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "medical record not found"})
}

func (s *Server) listVaccines(c *gin.Context) {
	s.mu.RLock()
	wire := make([]model.VaccineWire, 0, len(s.vaccines))
	for _, v := range s.vaccines {
		wire = append(wire, v.ToWire())
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, wire)
}

func (s *Server) createVaccine(c *gin.Context) {
	var w model.VaccineWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if w.PetID == "" || w.VaccineName == "" || w.VaccinationDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pet_id, vaccine_name and vaccination_date are required"})
		return
	}

	v := model.VaccineFromWire(w)
	v.ID = newID()

	s.mu.Lock()
	s.vaccines = append(s.vaccines, v)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, v.ToWire())
}

func (s *Server) updateVaccine(c *gin.Context) {
	id := model.ID(c.Param("id"))
	var w model.VaccineWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v := model.VaccineFromWire(w)
	v.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vaccines {
		if s.vaccines[i].ID == id {
			s.vaccines[i] = v
			c.JSON(http.StatusOK, v.ToWire())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "vaccine not found"})
}

func (s *Server) deleteVaccine(c *gin.Context) {
	id := model.ID(c.Param("id"))
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.vaccines {
		if s.vaccines[i].ID == id {
			s.vaccines = append(s.vaccines[:i], s.vaccines[i+1:]...)
			delete(s.histories, id.String())
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "vaccine deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "vaccine not found"})
}

func (s *Server) listVaccineHistory(c *gin.Context) {
	vaccineID := c.Param("id")
	s.mu.RLock()
	entries := s.histories[vaccineID]
	wire := make([]model.VaccineHistoryWire, 0, len(entries))
	for _, h := range entries {
		wire = append(wire, h.ToWire())
	}
	s.mu.RUnlock()
	c.JSON(http.StatusOK, wire)
}

func (s *Server) createVaccineHistory(c *gin.Context) {
	vaccineID := c.Param("id")
	var w model.VaccineHistoryWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if w.TreatmentInfo == "" || w.DateAdministered == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "treatment_info and date_administered are required"})
		return
	}

	h := model.VaccineHistoryFromWire(w)
	h.ID = newID()
	h.VaccineID = model.ID(vaccineID)

	s.mu.Lock()
	s.histories[vaccineID] = append(s.histories[vaccineID], h)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, h.ToWire())
}

func (s *Server) updateVaccineHistory(c *gin.Context) {
	vaccineID := c.Param("id")
	historyID := model.ID(c.Param("historyId"))
	var w model.VaccineHistoryWire
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h := model.VaccineHistoryFromWire(w)
	h.ID = historyID
	h.VaccineID = model.ID(vaccineID)

	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.histories[vaccineID]
	for i := range entries {
		if entries[i].ID == historyID {
			entries[i] = h
			c.JSON(http.StatusOK, h.ToWire())
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "history entry not found"})
}

func (s *Server) deleteVaccineHistory(c *gin.Context) {
	vaccineID := c.Param("id")
	historyID := model.ID(c.Param("historyId"))
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.histories[vaccineID]
	for i := range entries {
		if entries[i].ID == historyID {
			s.histories[vaccineID] = append(entries[:i], entries[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "history entry deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "history entry not found"})
}

func (s *Server) listBlockedSlots(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	s.mu.RLock()
	slots := s.blocked
	if len(slots) > limit {
		slots = slots[:limit]
	}
	wire := make([]model.BlockedSlotWire, 0, len(slots))
	for _, b := range slots {
		wire = append(wire, model.BlockedSlotWire{
			ID:     b.ID,
			Date:   b.Date,
			Time:   b.Time,
			Reason: b.Reason,
		})
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, model.BlockedSlotEnvelope{Data: wire})
}

// upcomingEvents merges booked appointments and vaccine due dates into
// the reminder feed, ordered by date.
func (s *Server) upcomingEvents(c *gin.Context) {
	s.mu.RLock()
	events := make([]model.UpcomingEventWire, 0, len(s.appointments)+len(s.vaccines))
	for _, a := range s.appointments {
		events = append(events, model.UpcomingEventWire{
			ID:            newID(),
			EventType:     model.EventTypeAppointment,
			Title:         "Clinic appointment",
			EventDate:     a.Date,
			EventTime:     a.Time + ":00",
			AppointmentID: a.ID,
		})
	}
	for _, v := range s.vaccines {
		events = append(events, model.UpcomingEventWire{
			ID:              newID(),
			EventType:       model.EventTypeVaccine,
			Title:           v.VaccineName + " due",
			EventDate:       v.DueDate(),
			VaccineRecordID: v.ID,
		})
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		return events[i].EventDate < events[j].EventDate
	})
	c.JSON(http.StatusOK, events)
}

func appointmentToWire(a model.Appointment) model.AppointmentWire {
	pets := make([]model.AppointmentPetWire, 0, len(a.Pets))
	for _, p := range a.Pets {
		w := model.AppointmentPetWire{
			PurposeOfVisit: p.PurposeOfVisit,
			Memo:           p.Memo,
		}
		if p.SelectedPet != nil {
			w.ID = p.SelectedPet.ID
			w.Name = p.SelectedPet.Name
			w.Type = p.SelectedPet.Type
			w.Gender = p.SelectedPet.Gender
			w.Age = p.SelectedPet.Age
			w.Weight = p.SelectedPet.Weight
			w.IsNeutered = p.SelectedPet.IsNeutered
		}
		pets = append(pets, w)
	}
	return model.AppointmentWire{
		ID:              a.ID,
		Status:          a.Status,
		Date:            a.Date,
		Time:            a.Time,
		TimeSlot:        a.TimeSlot,
		NumberOfPets:    a.NumberOfPets,
		Pets:            pets,
		MemberFirstName: a.MemberInfo.FirstName,
		MemberLastName:  a.MemberInfo.LastName,
		MemberPhone:     a.MemberInfo.PhoneNumber,
		AgreedToPolicy:  a.AgreedToPolicy,
	}
}

func bookingToAppointment(w model.BookingWire) model.Appointment {
	pets := make([]model.AppointmentPet, 0, len(w.Pets))
	for _, p := range w.Pets {
		snapshot := model.PetSnapshot{
			ID:         p.SelectedPet.ID,
			Name:       p.SelectedPet.Name,
			Type:       p.SelectedPet.Type,
			Gender:     p.SelectedPet.Gender,
			Age:        p.SelectedPet.Age,
			Weight:     p.SelectedPet.Weight,
			IsNeutered: p.SelectedPet.IsNeutered,
		}
		pets = append(pets, model.AppointmentPet{
			SelectedPet:    &snapshot,
			PurposeOfVisit: p.PurposeOfVisit,
			Memo:           p.Memo,
		})
	}
	return model.Appointment{
		Date:         w.Date,
		Time:         w.Time,
		TimeSlot:     w.TimeSlot,
		NumberOfPets: w.NumberOfPets,
		Pets:         pets,
		MemberInfo: model.MemberInfo{
			FirstName:   w.MemberInfo.FirstName,
			LastName:    w.MemberInfo.LastName,
			PhoneNumber: w.MemberInfo.PhoneNumber,
		},
		AgreedToPolicy: w.AgreedToPolicy,
	}
}
