package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	DatabaseDriver     string
	DatabaseDSN        string
	TemporalAddress    string
	TaskQueue          string
	PaymentMode        string
	PaymentDelay       time.Duration
	MockSearchDelay    time.Duration
	FlightAPIURL       string
	FlightAPITimeout   time.Duration
	AdminUsername      string
	AdminPassword      string
	JWTSecret          string
	TokenTTL           time.Duration
	GeminiAPIKey       string
	GeminiModel        string
	ConciergeReplay    bool
	UPIPayee           string
	CORSAllowedOrigins []string
}

// Payment modes
const (
	PaymentModeTemporal = "temporal"
	PaymentModeInline   = "inline"
)

// Load reads the environment, after loading a .env file when one exists
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabaseDriver:     strings.ToLower(getEnv("DATABASE_DRIVER", "mysql")),
		DatabaseDSN:        getEnv("DATABASE_DSN", "travel_user:travel_pass@tcp(localhost:3306)/travel_agency?parseTime=true"),
		TemporalAddress:    getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		TaskQueue:          getEnv("TASK_QUEUE", "payment-task-queue"),
		PaymentMode:        strings.ToLower(getEnv("PAYMENT_MODE", PaymentModeTemporal)),
		PaymentDelay:       parseDuration(getEnv("PAYMENT_DELAY", "2s"), 2*time.Second),
		MockSearchDelay:    parseDuration(getEnv("MOCK_SEARCH_DELAY", "600ms"), 600*time.Millisecond),
		FlightAPIURL:       getEnv("FLIGHT_API_URL", "https://tequila-api.kiwi.com"),
		FlightAPITimeout:   parseDuration(getEnv("FLIGHT_API_TIMEOUT", "20s"), 20*time.Second),
		AdminUsername:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "Admin@143476"),
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:           parseDuration(getEnv("TOKEN_TTL", "12h"), 12*time.Hour),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ConciergeReplay:    parseBool(getEnv("CONCIERGE_REPLAY_HISTORY", "false")),
		UPIPayee:           getEnv("UPI_PAYEE", "9493936084@upi"),
		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
