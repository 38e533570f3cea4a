// Package mockapi is an in-memory stand-in for the clinic backend,
// used for local development and by the integration tests. It mirrors
// the real API's routes and its mixed snake_case/camelCase payloads.
package mockapi

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jwalitptl/petcare-portal/config"
	"github.com/jwalitptl/petcare-portal/internal/model"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
)

type Server struct {
	cfg config.MockAPIConfig
	log *logger.Logger

	mu           sync.RWMutex
	otps         map[string]string // email -> bcrypt(otp)
	refreshUsers map[string]string // refresh token id -> user id
	profiles     map[string]model.UserProfile
	emailToID    map[string]string
	pets         []model.Pet
	appointments []model.Appointment
	medical      []model.MedicalRecord
	vaccines     []model.Vaccine
	histories    map[string][]model.VaccineHistory
	blocked      []model.BlockedSlot
}

func NewServer(cfg config.MockAPIConfig, log *logger.Logger) *Server {
	return &Server{
		cfg:          cfg,
		log:          log,
		otps:         make(map[string]string),
		refreshUsers: make(map[string]string),
		profiles:     make(map[string]model.UserProfile),
		emailToID:    make(map[string]string),
		histories:    make(map[string][]model.VaccineHistory),
	}
}

// SeedBlockedSlots installs the clinic's blocked calendar entries.
func (s *Server) SeedBlockedSlots(slots []model.BlockedSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = append(s.blocked, slots...)
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/send-otp", s.sendOTP)
		auth.POST("/verify-otp", s.verifyOTP)
		auth.POST("/refresh", s.refresh)
	}

	api := r.Group("/", s.authenticate())
	{
		api.GET("/auth/profile", s.getProfile)
		api.PUT("/auth/profile", s.updateProfile)

		api.GET("/pet", s.listPets)
		api.POST("/pet", s.createPet)

		api.GET("/appointments", s.listAppointments)
		api.GET("/appointments/:id", s.getAppointment)
		api.POST("/appointments", s.createAppointment)
		api.PUT("/appointments/:id", s.updateAppointment)
		api.DELETE("/appointments/:id", s.deleteAppointment)

		api.GET("/medical-records", s.listMedicalRecords)
		api.POST("/medical-records", s.createMedicalRecord)
		api.PUT("/medical-records/:id", s.updateMedicalRecord)
		api.DELETE("/medical-records/:id", s.deleteMedicalRecord)

		api.GET("/vaccines", s.listVaccines)
		api.POST("/vaccines", s.createVaccine)
		api.PUT("/vaccines/:id", s.updateVaccine)
		api.DELETE("/vaccines/:id", s.deleteVaccine)

		api.GET("/vaccines/:id/history", s.listVaccineHistory)
		api.POST("/vaccines/:id/history", s.createVaccineHistory)
		api.PUT("/vaccines/:id/history/:historyId", s.updateVaccineHistory)
		api.DELETE("/vaccines/:id/history/:historyId", s.deleteVaccineHistory)

		api.GET("/admin/blocked_slot", s.listBlockedSlots)

		api.GET("/upcoming-events/:profileId", s.upcomingEvents)
	}

	return r
}

func newID() model.ID {
	return model.ID(uuid.NewString())
}
