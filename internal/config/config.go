package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Branch    BranchConfig
	VAT       VATConfig
	Upstream  UpstreamConfig
	Printer   PrinterConfig
	AMQP      AMQPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type AuthConfig struct {
	// Secret shared with the host application that issues cashier tokens.
	Secret string
}

// BranchConfig identifies the physical store this terminal belongs to and
// carries the header printed at the top of every receipt.
type BranchConfig struct {
	ID        string
	StoreName string
	Address   string
	Phone     string
}

// VATConfig is the single flat rate passed in from configuration. No
// jurisdiction logic lives in this service.
type VATConfig struct {
	Applicable bool
	Rate       float64 // e.g. 0.075 for 7.5%
	SellerBIN  string
}

// UpstreamConfig holds base URLs for the backend services this core consumes.
type UpstreamConfig struct {
	CatalogURL        string
	PaymentMethodsURL string
	CustomerURL       string
	OrderURL          string
	RequestTimeout    time.Duration
}

type PrinterConfig struct {
	Type       string // "usb", "network", or "none"
	USBPath    string
	Address    string
	PaperWidth int // characters per line: 32 for 58mm, 48 for 80mm
}

type AMQPConfig struct {
	URL      string // empty disables event publishing
	Queue    string
	PoolSize int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-terminal-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos_terminal")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Dhaka")
	viper.SetDefault("AUTH_SECRET", "change-this-secret-in-production")
	viper.SetDefault("BRANCH_ID", "main")
	viper.SetDefault("STORE_NAME", "DokanLab Store")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("VAT_APPLICABLE", false)
	viper.SetDefault("VAT_RATE", 0.0)
	viper.SetDefault("VAT_SELLER_BIN", "")
	viper.SetDefault("CATALOG_URL", "http://localhost:9001")
	viper.SetDefault("PAYMENT_METHODS_URL", "http://localhost:9002")
	viper.SetDefault("CUSTOMER_URL", "http://localhost:9003")
	viper.SetDefault("ORDER_URL", "http://localhost:9004")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_PAPER_WIDTH", 32)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_QUEUE", "pos.sales")
	viper.SetDefault("AMQP_POOL_SIZE", 5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Auth: AuthConfig{
			Secret: viper.GetString("AUTH_SECRET"),
		},
		Branch: BranchConfig{
			ID:        viper.GetString("BRANCH_ID"),
			StoreName: viper.GetString("STORE_NAME"),
			Address:   viper.GetString("STORE_ADDRESS"),
			Phone:     viper.GetString("STORE_PHONE"),
		},
		VAT: VATConfig{
			Applicable: viper.GetBool("VAT_APPLICABLE"),
			Rate:       viper.GetFloat64("VAT_RATE"),
			SellerBIN:  viper.GetString("VAT_SELLER_BIN"),
		},
		Upstream: UpstreamConfig{
			CatalogURL:        viper.GetString("CATALOG_URL"),
			PaymentMethodsURL: viper.GetString("PAYMENT_METHODS_URL"),
			CustomerURL:       viper.GetString("CUSTOMER_URL"),
			OrderURL:          viper.GetString("ORDER_URL"),
			RequestTimeout:    time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:       viper.GetString("PRINTER_TYPE"),
			USBPath:    viper.GetString("PRINTER_USB_PATH"),
			Address:    viper.GetString("PRINTER_ADDRESS"),
			PaperWidth: viper.GetInt("PRINTER_PAPER_WIDTH"),
		},
		AMQP: AMQPConfig{
			URL:      viper.GetString("AMQP_URL"),
			Queue:    viper.GetString("AMQP_QUEUE"),
			PoolSize: viper.GetInt("AMQP_POOL_SIZE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
