package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrSMTPConfigIncomplete marks operator misconfiguration, as opposed to a
// failure while talking to the mail server.
var ErrSMTPConfigIncomplete = errors.New("SMTP configuration is incomplete. Ensure SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS are set.")

const defaultFromAddress = "no-reply@example.com"

type AppConfig struct {
	HTTPAddr     string
	Env          string
	OutputDir    string
	Locale       string
	Currency     string
	DatabaseURL  string
	KafkaBrokers []string // empty disables event publishing
	KafkaTopic   string
	SMTP         SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("Ledger: No .env file found, relying on system env vars")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() AppConfig {
	return AppConfig{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		Env:          getEnv("APP_ENV", "production"),
		OutputDir:    getEnv("OUTPUT_DIR", "generated-ledgers"),
		Locale:       getEnv("LEDGER_LOCALE", "en-IN"),
		Currency:     getEnv("LEDGER_CURRENCY", "INR"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		KafkaBrokers: parseCSVEnv("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "ledger.statement.sent"),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", ""),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate reports ErrSMTPConfigIncomplete unless host, a positive port,
// username and password are all present.
func (c SMTPConfig) Validate() error {
	if c.Host == "" || c.Username == "" || c.Password == "" {
		return ErrSMTPConfigIncomplete
	}
	if _, err := c.PortNumber(); err != nil {
		return ErrSMTPConfigIncomplete
	}
	return nil
}

func (c SMTPConfig) PortNumber() (int, error) {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return 0, err
	}
	if port <= 0 {
		return 0, strconv.ErrRange
	}
	return port, nil
}

// ImplicitTLS is true for port 465, where the connection starts with TLS.
func (c SMTPConfig) ImplicitTLS() bool {
	port, err := c.PortNumber()
	return err == nil && port == 465
}

// FromAddress falls back to the username, then to a placeholder sender.
func (c SMTPConfig) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	if c.Username != "" {
		return c.Username
	}
	return defaultFromAddress
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCSVEnv(key, fallback string) []string {
	val := getEnv(key, fallback)
	var parts []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
