package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"consultorio/config"
	"consultorio/cron"
	"consultorio/database"
	availabilityRepo "consultorio/database/repository/availability"
	blockedRepo "consultorio/database/repository/blocked"
	consultationRepo "consultorio/database/repository/consultation"
	reservationRepo "consultorio/database/repository/reservation"
	tokenRepo "consultorio/database/repository/token"
	userRepoPkg "consultorio/database/repository/user"
	"consultorio/handlers"
	"consultorio/middleware"
	"consultorio/routes"
	"consultorio/services/availability"
	"consultorio/services/consultation"
	"consultorio/services/notification"
	"consultorio/services/payment"
	"consultorio/services/reservation"
	"consultorio/services/user"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	utils.StartHealthMonitor(rootCtx, time.Minute,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	queue := cron.NewQueueClient()
	defer queue.Close()

	// repositories.
	weeklyRepo := availabilityRepo.NewMongoGlobalEnabledRepo()
	blocksRepo := blockedRepo.NewMongoBlockedHourRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()
	usersRepo := userRepoPkg.NewMongoUserRepo()
	msgRepo := consultationRepo.NewMongoConsultationRepo()
	tokensRepo := tokenRepo.NewMongoBlockedTokenRepo()

	loc := config.Location()

	// services.
	userService := &user.DefaultUserService{
		Repo:        usersRepo,
		Tokens:      tokensRepo,
		AuthCache:   utils.GetAuthCacheClient(),
		Queue:       queue,
		TokenTTL:    config.TokenTTL(),
		FrontendURL: config.AppConfig.FrontendURL,
	}
	if err := userService.EnsureAdmin(rootCtx, config.AppConfig.AdminUsername, config.AppConfig.AdminPassword, config.AppConfig.AdminEmail); err != nil {
		logger.Error("main: failed to seed admin", zap.Error(err))
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Weekly:       weeklyRepo,
		Blocked:      blocksRepo,
		Reservations: resRepo,
		Cache:        utils.GetCacheClient(),
		Loc:          loc,
	}
	reservationService := &reservation.DefaultReservationService{
		Repo:         resRepo,
		Slots:        availabilityService,
		Queue:        queue,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
	}
	consultationService := &consultation.DefaultConsultationService{Repo: msgRepo}

	gateway, err := payment.NewGateway(
		config.AppConfig.PaymentProvider,
		config.AppConfig.MercadoPagoAccessToken,
		config.AppConfig.StripeKey,
		config.AppConfig.PaymentSuccessURL,
		config.AppConfig.PaymentCancelURL,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: payment gateway: %v", err)
	}
	paymentService := &payment.DefaultPaymentService{
		Gateway: gateway,
		Defaults: payment.Defaults{
			Description: config.AppConfig.ServiceDescription,
			Price:       config.AppConfig.ServicePrice,
			Currency:    config.AppConfig.ServiceCurrency,
		},
	}

	// background work.
	worker := cron.InitWorker(cron.WorkerDeps{
		Reservations: reservationService,
		Users:        userService,
		Mailer:       notification.NewMailer(config.AppConfig.SendGridAPIKey, config.AppConfig.MailFrom, config.AppConfig.MailFromName),
	})
	maintenance, err := cron.StartMaintenance(loc, availabilityService, tokensRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to schedule maintenance: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())

	handlerBundle := handlers.NewHandlerBundle(userService, availabilityService, reservationService, consultationService, paymentService)
	handlerBundle.RequestsPerMin = config.AppConfig.MaxRequestsPerMin
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	<-maintenance.Stop().Done()
	worker.Shutdown()
	if err := database.Disconnect(ctx); err != nil {
		logger.Error("main: mongo disconnect failed", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}
