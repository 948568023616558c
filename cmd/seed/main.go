// Command seed fills a development database with opening hours, patients,
// reservations and contact-form messages.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"consultorio/config"
	"consultorio/database"
	availabilityRepo "consultorio/database/repository/availability"
	blockedRepo "consultorio/database/repository/blocked"
	consultationRepo "consultorio/database/repository/consultation"
	reservationRepo "consultorio/database/repository/reservation"
	tokenRepo "consultorio/database/repository/token"
	userRepoPkg "consultorio/database/repository/user"
	"consultorio/models"
	"consultorio/services/availability"
	"consultorio/services/consultation"
	"consultorio/services/reservation"
	"consultorio/services/scheduling"
	"consultorio/services/user"
	"consultorio/utils"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var collections = []string{"global_enabled", "blocked_hours", "reservations", "users", "consultations", "blocked_tokens"}

var (
	firstNames = []string{"Ana", "Luis", "Sofía", "Martín", "Lucía", "Diego", "Valentina", "Tomás"}
	lastNames  = []string{"Gómez", "Pérez", "Fernández", "López", "Díaz", "Romero", "Sosa", "Álvarez"}
	topics     = []string{
		"Quisiera saber si atienden por obra social.",
		"¿Tienen turnos por la tarde?",
		"Busco terapia para mi hijo adolescente.",
		"¿Las sesiones pueden ser virtuales?",
	}
)

type options struct {
	reset        bool
	patients     int
	reservations int
	messages     int
	password     string
}

func main() {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the development database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "drop every collection before seeding")
	cmd.Flags().IntVar(&opts.patients, "patients", 6, "patients to register")
	cmd.Flags().IntVar(&opts.reservations, "reservations", 10, "guest reservations to book over the next two weeks")
	cmd.Flags().IntVar(&opts.messages, "messages", 4, "contact-form messages to leave")
	cmd.Flags().StringVar(&opts.password, "password", "paciente123", "password of the seeded patients")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	config.LoadConfig()
	database.InitDB()
	defer database.Disconnect(context.Background())
	logger := utils.GetLogger().Sugar()

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if opts.reset {
		for _, name := range collections {
			if _, err := database.DB().Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				return fmt.Errorf("failed to clear %s: %w", name, err)
			}
		}
		logger.Infof("cleared %d collections", len(collections))
	}

	loc := config.Location()
	resRepo := reservationRepo.NewMongoReservationRepo()
	avail := &availability.DefaultAvailabilityService{
		Weekly:       availabilityRepo.NewMongoGlobalEnabledRepo(),
		Blocked:      blockedRepo.NewMongoBlockedHourRepo(),
		Reservations: resRepo,
		Loc:          loc,
	}
	users := &user.DefaultUserService{
		Repo:     userRepoPkg.NewMongoUserRepo(),
		Tokens:   tokenRepo.NewMongoBlockedTokenRepo(),
		TokenTTL: config.TokenTTL(),
	}
	bookings := &reservation.DefaultReservationService{Repo: resRepo, Slots: avail}
	messages := &consultation.DefaultConsultationService{Repo: consultationRepo.NewMongoConsultationRepo()}

	if err := users.EnsureAdmin(ctx, config.AppConfig.AdminUsername, config.AppConfig.AdminPassword, config.AppConfig.AdminEmail); err != nil {
		logger.Warnf("admin not seeded: %v", err)
	}

	// Mornings every weekday, afternoons Monday to Thursday.
	for _, day := range scheduling.PossibleDays {
		ranges := []scheduling.HourRange{{Start: 9, End: 13}}
		if day != scheduling.Friday {
			ranges = append(ranges, scheduling.HourRange{Start: 15, End: 19})
		}
		if _, err := avail.ReplaceDay(ctx, string(day), ranges); err != nil {
			return fmt.Errorf("failed to seed %s: %w", day, err)
		}
	}
	logger.Infof("weekly availability set for %d days", len(scheduling.PossibleDays))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 1; i <= opts.patients; i++ {
		name := firstNames[rng.Intn(len(firstNames))]
		lastname := lastNames[rng.Intn(len(lastNames))]
		_, err := users.Signup(ctx, models.SignupRequest{
			Username: fmt.Sprintf("paciente%d", i),
			Name:     name,
			Lastname: lastname,
			DNI:      fmt.Sprintf("%08d", 30000000+rng.Intn(9999999)),
			Email:    fmt.Sprintf("paciente%d@example.com", i),
			Phone:    fmt.Sprintf("11%08d", rng.Intn(100000000)),
			Password: opts.password,
		})
		if err != nil {
			logger.Warnf("patient %d skipped: %v", i, err)
		}
	}

	// Block the first hour of next Monday.
	today := scheduling.StartOfDay(time.Now().In(loc))
	monday := today.AddDate(0, 0, (8-int(today.Weekday()))%7)
	if monday.Equal(today) {
		monday = monday.AddDate(0, 0, 7)
	}
	if _, err := avail.BlockHours(ctx, []models.BlockHourInput{{Date: monday.Format(scheduling.DateLayout), Hour: 9, Reason: "supervisión"}}); err != nil {
		return fmt.Errorf("failed to block hours: %w", err)
	}

	booked := 0
	for attempt := 0; booked < opts.reservations && attempt < opts.reservations*10; attempt++ {
		day := today.AddDate(0, 0, 1+rng.Intn(14))
		state, err := avail.DayState(ctx, day)
		if err != nil {
			return err
		}
		var free []scheduling.Hour
		for _, s := range scheduling.DaySlots(state, time.Now().In(loc)) {
			if s.Available {
				free = append(free, s.Hour)
			}
		}
		if len(free) == 0 {
			continue
		}
		_, err = bookings.CreateGuestReservation(ctx, models.GuestReservationRequest{
			Date:       scheduling.FormatSlot(day, free[rng.Intn(len(free))]),
			GuestName:  firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			GuestPhone: fmt.Sprintf("11%08d", rng.Intn(100000000)),
		})
		if err != nil {
			logger.Debugw("reservation skipped", zap.Error(err))
			continue
		}
		booked++
	}

	for i := 0; i < opts.messages; i++ {
		_, err := messages.SendMessage(ctx, models.MessageRequest{
			Name:         firstNames[rng.Intn(len(firstNames))],
			Lastname:     lastNames[rng.Intn(len(lastNames))],
			Age:          18 + rng.Intn(50),
			Phone:        fmt.Sprintf("11%08d", rng.Intn(100000000)),
			Consultation: topics[i%len(topics)],
		})
		if err != nil {
			return fmt.Errorf("failed to seed consultation: %w", err)
		}
	}

	logger.Infof("seeded %d patients, %d reservations and %d messages", opts.patients, booked, opts.messages)
	return nil
}
