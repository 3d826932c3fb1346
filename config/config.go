package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Site
	SiteURL        string
	ContactEmail   string // Overrides the address in the site copy when set
	ContentPath    string // Optional YAML file replacing the embedded site copy
	AllowedOrigins []string
	CookieSecure   bool
	// Contact form
	SubmitDelay        time.Duration
	SubmitTimeout      time.Duration
	SimulateFailure    string // When set, every lead submission fails with this reason
	RevalidateOnChange bool
	FormSessionTTL     time.Duration
	FormSweepInterval  time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
}

func LoadConfig() (*Config, error) {
	// Load .env file when present (local development only)
	_ = godotenv.Load()

	ginMode := getEnv("GIN_MODE", "debug")

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  ginMode,
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		// Strip trailing slash so links can be joined safely
		SiteURL:        strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		ContactEmail:   getEnv("CONTACT_EMAIL", ""),
		ContentPath:    getEnv("CONTENT_PATH", ""),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"https://nymbleai.com", "https://www.nymbleai.com"}),
		CookieSecure:   getEnvBool("COOKIE_SECURE", ginMode == "release"),
		// Contact form
		SubmitDelay:        getEnvDuration("SUBMIT_DELAY", 2*time.Second),
		SubmitTimeout:      getEnvDuration("SUBMIT_TIMEOUT", 0),
		SimulateFailure:    getEnv("SIMULATE_FAILURE", ""),
		RevalidateOnChange: getEnvBool("REVALIDATE_ON_CHANGE", false),
		FormSessionTTL:     getEnvDuration("FORM_SESSION_TTL", 30*time.Minute),
		FormSweepInterval:  getEnvDuration("FORM_SWEEP_INTERVAL", time.Minute),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),  // 5 submissions per window
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300), // 300 requests per window
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.SubmitDelay < 0 {
		return fmt.Errorf("SUBMIT_DELAY must not be negative, got %s", c.SubmitDelay)
	}
	if c.SubmitTimeout < 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT must not be negative, got %s", c.SubmitTimeout)
	}
	if c.FormSweepInterval <= 0 {
		return fmt.Errorf("FORM_SWEEP_INTERVAL must be positive, got %s", c.FormSweepInterval)
	}
	if c.RateLimitWindowSeconds <= 0 || c.RateLimitContactThreshold <= 0 || c.RateLimitGlobalThreshold <= 0 {
		return fmt.Errorf("rate limit window and thresholds must be positive")
	}
	return nil
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("1500ms", "2s") or plain milliseconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimRight(part, "/"))
		}
	}
	return out
}
