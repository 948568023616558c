package routes

import (
	"net/http"
	"time"

	"consultorio/handlers"
	"consultorio/middleware"
	"consultorio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers login, logout and password endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth, admin gin.HandlerFunc) {
	api.POST("/login", hb.Auth.LoginHandler)
	api.POST("/reset_password", hb.Auth.ResetPasswordHandler)
	api.POST("/change_password", hb.Auth.ChangePasswordHandler)

	api.POST("/logout", auth, hb.Auth.LogoutHandler)
	api.POST("/signup", auth, admin, hb.Auth.SignupHandler)
}

// RegisterUserRoutes registers account management and profile endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth, admin gin.HandlerFunc) {
	self := api.Group("", auth)
	{
		self.GET("/profile", hb.Users.ProfileHandler)
		self.PUT("/profile_edit", hb.Users.EditProfileHandler)
	}

	adm := api.Group("", auth, admin)
	{
		adm.GET("/users", hb.Users.GetUsersHandler)
		adm.GET("/get_user/:id", hb.Users.GetUserHandler)
		adm.PUT("/edit_user/:id", hb.Users.EditUserHandler)
		adm.DELETE("/users/:id", hb.Users.DeleteUserHandler)
	}
}

// RegisterConsultationRoutes registers the contact form and the admin inbox.
func RegisterConsultationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth, admin gin.HandlerFunc) {
	api.POST("/message", hb.Consultations.SendMessageHandler)

	adm := api.Group("", auth, admin)
	{
		adm.GET("/consultations", hb.Consultations.ListHandler)
		adm.GET("/consultation/:id", hb.Consultations.GetHandler)
		adm.PUT("/consultations/:id/mark_as_read", hb.Consultations.MarkReadHandler)
		adm.PUT("/consultations/:id/mark_as_unread", hb.Consultations.MarkUnreadHandler)
		adm.GET("/deleted_consultations", hb.Consultations.ListDeletedHandler)
		adm.PUT("/deleted_consultations/:id", hb.Consultations.SoftDeleteHandler)
		adm.PUT("/deleted_consultations/:id/restore", hb.Consultations.RestoreHandler)
		adm.DELETE("/deleted_consultations/:id", hb.Consultations.HardDeleteHandler)
	}
}

// RegisterAvailabilityRoutes registers the weekly editor, blocks and the guest calendar.
func RegisterAvailabilityRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth, admin gin.HandlerFunc) {
	api.GET("/get_global_enabled", hb.Availability.GetGlobalEnabledHandler)
	api.GET("/get_global_enabled_by_day/:day", hb.Availability.GetGlobalEnabledByDayHandler)
	api.GET("/weekly_grid", hb.Availability.WeeklyGridHandler)
	api.GET("/availability/:date", hb.Availability.DaySlotsHandler)
	api.GET("/calendar/:year/:month", hb.Availability.MonthCalendarHandler)

	adm := api.Group("", auth, admin)
	{
		adm.POST("/global_enabled", hb.Availability.AddGlobalEnabledHandler)
		adm.PUT("/global_enabled/:day", hb.Availability.ReplaceDayHandler)
		adm.GET("/global_enabled/:day/start_hours", hb.Availability.StartHoursHandler)
		adm.GET("/global_enabled/:day/end_hours", hb.Availability.EndHoursHandler)
		adm.DELETE("/delete_global_enabled/:id", hb.Availability.DeleteGlobalEnabledHandler)
		adm.POST("/block_multiple_hours", hb.Availability.BlockHoursHandler)
		adm.GET("/bloquear", hb.Availability.ListBlockedHandler)
		adm.DELETE("/bloquear/:id", hb.Availability.UnblockHandler)
	}
}

// RegisterReservationRoutes registers booking endpoints.
func RegisterReservationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth, admin gin.HandlerFunc) {
	api.POST("/reservations/guest", hb.Reservations.CreateGuestHandler)

	api.POST("/reservations", auth, hb.Reservations.CreateHandler)
	api.GET("/reservations/mine", auth, hb.Reservations.MineHandler)
	api.DELETE("/reservations/:id", auth, hb.Reservations.CancelHandler)

	api.GET("/reservations", auth, admin, hb.Reservations.ListHandler)
	api.GET("/reservations.ics", auth, admin, hb.Reservations.ICSHandler)
}

// RegisterPaymentRoutes registers the checkout preference endpoint.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/create_preference", hb.Payments.CreatePreferenceHandler)
}

// RegisterHealthRoute registers the health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware())

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(hb.RequestsPerMin))

	auth := middleware.JWTAuthMiddleware(hb.Sessions)
	admin := middleware.AdminOnly()

	RegisterAuthRoutes(api, hb, auth, admin)
	RegisterUserRoutes(api, hb, auth, admin)
	RegisterConsultationRoutes(api, hb, auth, admin)
	RegisterAvailabilityRoutes(api, hb, auth, admin)
	RegisterReservationRoutes(api, hb, auth, admin)
	RegisterPaymentRoutes(api, hb)
}
