package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Toss     TossConfig
	Deposit  DepositConfig
	Device   DeviceConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// TossConfig holds payment gateway credentials. BaseURL is overridable so
// tests and sandbox environments can point at a stub.
type TossConfig struct {
	SecretKey string
	BaseURL   string
}

// DepositConfig is the company account shown to bank-transfer customers.
type DepositConfig struct {
	BankName      string
	AccountNumber string
	AccountHolder string
	DeadlineDays  int
}

type DeviceConfig struct {
	MaxDevicesPerUser int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Course Platform"),
		},
		Toss: TossConfig{
			SecretKey: getEnv("TOSS_SECRET_KEY", ""),
			BaseURL:   getEnv("TOSS_BASE_URL", ""),
		},
		Deposit: DepositConfig{
			BankName:      getEnv("DEPOSIT_BANK_NAME", "KB Kookmin"),
			AccountNumber: getEnv("DEPOSIT_ACCOUNT_NUMBER", ""),
			AccountHolder: getEnv("DEPOSIT_ACCOUNT_HOLDER", ""),
			DeadlineDays:  getEnvAsInt("DEPOSIT_DEADLINE_DAYS", 3),
		},
		Device: DeviceConfig{
			MaxDevicesPerUser: getEnvAsInt("MAX_DEVICES_PER_USER", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
