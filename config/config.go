package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RabbitHost     string
	RabbitPort     string
	RabbitUser     string
	RabbitPassword string
	RabbitVHost    string

	JWTSecret     string
	JWTExpiryDays int

	RazorpayKeyID     string
	RazorpayKeySecret string

	ClientURLs []string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "ridecarry-api"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 5000))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "ridecarry"))

	cfg.RabbitHost = cast.ToString(getOrReturnDefault("RABBITMQ_HOST", "localhost"))
	cfg.RabbitPort = cast.ToString(getOrReturnDefault("RABBITMQ_PORT", "5672"))
	cfg.RabbitUser = cast.ToString(getOrReturnDefault("RABBITMQ_USER", "guest"))
	cfg.RabbitPassword = cast.ToString(getOrReturnDefault("RABBITMQ_PASSWORD", "guest"))
	cfg.RabbitVHost = cast.ToString(getOrReturnDefault("RABBITMQ_VHOST", "/"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "devsecret"))
	cfg.JWTExpiryDays = cast.ToInt(getOrReturnDefault("JWT_EXPIRY_DAYS", 7))

	cfg.RazorpayKeyID = cast.ToString(getOrReturnDefault("RAZORPAY_KEY_ID", ""))
	cfg.RazorpayKeySecret = cast.ToString(getOrReturnDefault("RAZORPAY_KEY_SECRET", ""))

	clientURLs := cast.ToString(getOrReturnDefault("CLIENT_URLS", "http://localhost:5173"))
	for _, u := range strings.Split(clientURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.ClientURLs = append(cfg.ClientURLs, u)
		}
	}

	return cfg
}

func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func (c Config) AMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s%s",
		c.RabbitUser, c.RabbitPassword, c.RabbitHost, c.RabbitPort, c.RabbitVHost)
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
