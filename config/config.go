package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	JWTTTLHours       int    `mapstructure:"JWT_TTL_HOURS"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	Timezone          string `mapstructure:"TIMEZONE"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Payments.
	PaymentProvider        string  `mapstructure:"PAYMENT_PROVIDER"`
	MercadoPagoAccessToken string  `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	StripeKey              string  `mapstructure:"STRIPE_KEY"`
	ServicePrice           float64 `mapstructure:"SERVICE_PRICE"`
	ServiceDescription     string  `mapstructure:"SERVICE_DESCRIPTION"`
	ServiceCurrency        string  `mapstructure:"SERVICE_CURRENCY"`
	PaymentSuccessURL      string  `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL       string  `mapstructure:"PAYMENT_CANCEL_URL"`

	// Mail.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
	MailFromName   string `mapstructure:"MAIL_FROM_NAME"`
	FrontendURL    string `mapstructure:"FRONTEND_URL"`

	// Bootstrap admin account.
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`

	ReminderLeadHours int `mapstructure:"REMINDER_LEAD_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL_HOURS", 12)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "consultorio")
	viper.SetDefault("PAYMENT_PROVIDER", "mercadopago")
	viper.SetDefault("MERCADOPAGO_ACCESS_TOKEN", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("SERVICE_PRICE", 100)
	viper.SetDefault("SERVICE_DESCRIPTION", "Honorarios")
	viper.SetDefault("SERVICE_CURRENCY", "ARS")
	viper.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:3000/pago/exito")
	viper.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/pago/cancelado")
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "no-reply@consultorio.local")
	viper.SetDefault("MAIL_FROM_NAME", "Consultorio")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("ADMIN_USERNAME", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location returns the clinic's timezone, falling back to UTC.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TokenTTL is the lifetime of issued access tokens.
func TokenTTL() time.Duration {
	if AppConfig.JWTTTLHours <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(AppConfig.JWTTTLHours) * time.Hour
}
