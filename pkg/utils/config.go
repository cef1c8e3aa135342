package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Booking  BookingAPIConfig
	Payment  PaymentConfig
	Pricing  PricingConfig
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

// StorageConfig selects the draft persistence backend.
type StorageConfig struct {
	Driver string // "file", "postgres" or "memory"
	Path   string // directory for the file driver
}

type BookingAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type PaymentConfig struct {
	SuccessURL string
	CancelURL  string
}

type PricingConfig struct {
	TaxPercentage     float64
	UpfrontPercentage float64
	OutOfOfficeFee    float64
	OfficeOpenHour    int
	OfficeCloseHour   int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_PATH", "drafts/")
	viper.SetDefault("BOOKING_API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("TAX_PERCENTAGE", 0.0)
	viper.SetDefault("UPFRONT_PERCENTAGE", 30.0)
	viper.SetDefault("OUT_OF_OFFICE_FEE", 25.0)
	viper.SetDefault("OFFICE_OPEN_HOUR", 8)
	viper.SetDefault("OFFICE_CLOSE_HOUR", 20)

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
		Storage: StorageConfig{
			Driver: viper.GetString("STORAGE_DRIVER"),
			Path:   viper.GetString("STORAGE_PATH"),
		},
		Booking: BookingAPIConfig{
			BaseURL:        viper.GetString("BOOKING_API_BASE_URL"),
			TimeoutSeconds: viper.GetInt("BOOKING_API_TIMEOUT_SECONDS"),
		},
		Payment: PaymentConfig{
			SuccessURL: viper.GetString("PAYMENT_SUCCESS_URL"),
			CancelURL:  viper.GetString("PAYMENT_CANCEL_URL"),
		},
		Pricing: PricingConfig{
			TaxPercentage:     viper.GetFloat64("TAX_PERCENTAGE"),
			UpfrontPercentage: viper.GetFloat64("UPFRONT_PERCENTAGE"),
			OutOfOfficeFee:    viper.GetFloat64("OUT_OF_OFFICE_FEE"),
			OfficeOpenHour:    viper.GetInt("OFFICE_OPEN_HOUR"),
			OfficeCloseHour:   viper.GetInt("OFFICE_CLOSE_HOUR"),
		},
	}

	return config, nil
}
