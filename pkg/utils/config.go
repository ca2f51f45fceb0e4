package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Pricing  PricingConfig
	Maps     MapsConfig
	Stripe   StripeConfig
	Wizard   WizardConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// PricingConfig is the rule table for the pricing engine. One currency,
// fixed at configuration time.
type PricingConfig struct {
	Currency            string
	TaxRatePercent      float64
	AirportFee          float64
	MeetAndGreetFee     float64
	ChildSeatFee        float64
	ExtraStopFee        float64
	HourlyFallbackHours int
}

type MapsConfig struct {
	APIKey string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type WizardConfig struct {
	DraftTTLMinutes   int
	SessionTTLMinutes int
}

type AdminConfig struct {
	// Bcrypt hash of the admin API token.
	TokenHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("PRICING_CURRENCY", "EUR")
	viper.SetDefault("PRICING_TAX_RATE_PERCENT", 21.0)
	viper.SetDefault("PRICING_AIRPORT_FEE", 15.0)
	viper.SetDefault("PRICING_MEET_AND_GREET_FEE", 20.0)
	viper.SetDefault("PRICING_CHILD_SEAT_FEE", 10.0)
	viper.SetDefault("PRICING_EXTRA_STOP_FEE", 10.0)
	viper.SetDefault("PRICING_HOURLY_FALLBACK_HOURS", 3)
	viper.SetDefault("WIZARD_DRAFT_TTL_MINUTES", 30)
	viper.SetDefault("WIZARD_SESSION_TTL_MINUTES", 120)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		Pricing: PricingConfig{
			Currency:            viper.GetString("PRICING_CURRENCY"),
			TaxRatePercent:      viper.GetFloat64("PRICING_TAX_RATE_PERCENT"),
			AirportFee:          viper.GetFloat64("PRICING_AIRPORT_FEE"),
			MeetAndGreetFee:     viper.GetFloat64("PRICING_MEET_AND_GREET_FEE"),
			ChildSeatFee:        viper.GetFloat64("PRICING_CHILD_SEAT_FEE"),
			ExtraStopFee:        viper.GetFloat64("PRICING_EXTRA_STOP_FEE"),
			HourlyFallbackHours: viper.GetInt("PRICING_HOURLY_FALLBACK_HOURS"),
		},
		Maps: MapsConfig{
			APIKey: viper.GetString("GOOGLE_MAPS_API_KEY"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
			SuccessURL:    viper.GetString("STRIPE_SUCCESS_URL"),
			CancelURL:     viper.GetString("STRIPE_CANCEL_URL"),
		},
		Wizard: WizardConfig{
			DraftTTLMinutes:   viper.GetInt("WIZARD_DRAFT_TTL_MINUTES"),
			SessionTTLMinutes: viper.GetInt("WIZARD_SESSION_TTL_MINUTES"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
	}

	return config, nil
}
