package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// DepositFraction is the share of the total collected upfront.
	DepositFraction float64

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
	AdminEmail string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	ChatSessionTTL time.Duration

	JWTSecret string
}

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "alpin_resort"),

		DepositFraction: getenvFloat("DEPOSIT_FRACTION", 0.5),

		SMTPHost:   strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:   getenv("SMTP_PORT", "587"),
		SMTPUser:   strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass:   strings.TrimSpace(os.Getenv("SMTP_PASS")),
		MailFrom:   getenv("MAIL_FROM", "bookings@alpinresort.al"),
		AdminEmail: strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),

		LLMBaseURL: strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		LLMAPIKey:  strings.TrimSpace(os.Getenv("LLM_API_KEY")),
		LLMModel:   getenv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout: getenvDuration("LLM_TIMEOUT", 20*time.Second),

		ChatSessionTTL: getenvDuration("CHAT_SESSION_TTL", 30*time.Minute),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),
	}

	if env.DepositFraction < 0 || env.DepositFraction > 1 {
		log.Printf("warning: DEPOSIT_FRACTION %v out of range, using 0.5", env.DepositFraction)
		env.DepositFraction = 0.5
	}

	return env
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
