// Command portal is a terminal front end over the session store. It
// walks the OTP login, then prints the signed-in account's pets,
// appointments and reminders.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jwalitptl/petcare-portal/config"
	"github.com/jwalitptl/petcare-portal/internal/session"
	"github.com/jwalitptl/petcare-portal/pkg/logger"
	"github.com/jwalitptl/petcare-portal/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	})
	m := metrics.NewMetrics("portal")

	sess, err := session.New(cfg, log, m, func() {
		fmt.Println("session expired, please sign in again")
	})
	if err != nil {
		log.Fatal(err, "failed to build session")
	}

	ctx := context.Background()
	in := bufio.NewReader(os.Stdin)

	if !sess.Auth.Authenticated() {
		if err := login(ctx, sess, in); err != nil {
			log.Fatal(err, "login failed")
		}
	}

	profile, err := sess.User.Fetch(ctx)
	if err != nil {
		log.Fatal(err, "failed to load profile")
	}
	fmt.Printf("Signed in as %s %s <%s>\n\n", profile.FirstName, profile.LastName, profile.Email)

	if _, err := sess.Pets.FetchAll(ctx); err != nil {
		log.Error(err, "failed to load pets")
	}
	if _, err := sess.Appointments.FetchAll(ctx); err != nil {
		log.Error(err, "failed to load appointments")
	}

	fmt.Println("Pets:")
	for _, p := range sess.Pets.Pets().Items {
		fmt.Printf("  %s (%s, %s)\n", p.Name, p.Type, p.Breed)
	}

	fmt.Println("\nAppointments:")
	for _, v := range sess.AppointmentsWithPets() {
		names := make([]string, 0, len(v.Entries))
		for _, e := range v.Entries {
			names = append(names, e.PetName)
		}
		fmt.Printf("  %s %s [%s] %s\n", v.Appointment.Date, v.Appointment.Time,
			v.Appointment.Status, strings.Join(names, ", "))
	}

	events, err := sess.UpcomingEvents(ctx)
	if err != nil {
		log.Error(err, "failed to load upcoming events")
		return
	}
	fmt.Println("\nUpcoming:")
	for _, e := range events {
		fmt.Printf("  %s %s %s\n", e.Date, e.Type, e.Title)
	}
}

func login(ctx context.Context, sess *session.Session, in *bufio.Reader) error {
	fmt.Print("Email: ")
	email, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	if err := sess.Auth.SendOTP(ctx, strings.TrimSpace(email)); err != nil {
		return err
	}

	fmt.Print("One-time code: ")
	otp, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	return sess.Auth.VerifyOTP(ctx, strings.TrimSpace(otp))
}
