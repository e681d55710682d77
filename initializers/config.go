package initializers

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Kariqs/ezelectronics-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	GinMode      string
	DBDriver     string
	DBSource     string
	JWTSecret    string
	AllowOrigins []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CartCacheTTL  time.Duration

	SeedFile string

	CheckoutWebhookURL string
	Mail               utils.MailConfig
	ReceiptEmailTo     string
	ReceiptTemplate    string
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", gin.DebugMode),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBSource:      getEnv("DB_SOURCE", "ezelectronics.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AllowOrigins:  splitList(getEnv("ALLOW_ORIGINS", "http://localhost:3000")),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SeedFile:      os.Getenv("SEED_FILE"),

		CheckoutWebhookURL: os.Getenv("CHECKOUT_WEBHOOK_URL"),
		Mail: utils.MailConfig{
			From:        os.Getenv("FROM_EMAIL"),
			Password:    os.Getenv("FROM_EMAIL_PASSWORD"),
			SMTPHost:    os.Getenv("FROM_EMAIL_SMTP"),
			SMTPAddress: os.Getenv("SMTP_ADDRESS"),
		},
		ReceiptEmailTo:  os.Getenv("RECEIPT_EMAIL_TO"),
		ReceiptTemplate: getEnv("RECEIPT_TEMPLATE", "templates/checkout_receipt.html"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("REDIS_DB must be an integer")
	}
	cfg.RedisDB = redisDB

	ttl, err := time.ParseDuration(getEnv("CART_CACHE_TTL", "15m"))
	if err != nil {
		return nil, errors.New("CART_CACHE_TTL must be a duration such as 15m")
	}
	cfg.CartCacheTTL = ttl

	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, errors.New("DB_DRIVER must be sqlite or mysql")
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == gin.ReleaseMode {
			return nil, errors.New("JWT_SECRET is required in release mode")
		}
		log.Println("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = "dev-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
