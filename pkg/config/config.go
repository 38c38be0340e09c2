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

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Agent     AgentConfig
	Fireflies FirefliesConfig
	OpenAI    OpenAIConfig
	Airtable  AirtableConfig
	Gmail     GmailConfig
	Calendar  CalendarConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	WebhookSecret   string
}

// AgentConfig is the configuration surface the pipeline core consumes
type AgentConfig struct {
	UseMock bool
	Timeout time.Duration
	Sinks   []string
	MyEmail string
	MyName  string
}

// FirefliesConfig holds Fireflies GraphQL API configuration
type FirefliesConfig struct {
	APIKey  string
	BaseURL string
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// AirtableConfig holds Airtable task store configuration
type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
}

// GmailConfig holds Gmail notification configuration
type GmailConfig struct {
	AccessToken string
	From        string
	NotifyTo    string
	BaseURL     string
}

// CalendarConfig holds Google Calendar configuration
type CalendarConfig struct {
	AccessToken string
	CalendarID  string
	BaseURL     string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds audit storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	// Mock-first: without an OpenAI key the agent runs fully mocked,
	// same as the original deployment. AGENT_USE_MOCK overrides.
	defaultMock := getEnv("OPENAI_API_KEY", "") == ""

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			WebhookSecret:   getEnv("FIREFLIES_WEBHOOK_SECRET", ""),
		},
		Agent: AgentConfig{
			UseMock: getEnvAsBool("AGENT_USE_MOCK", defaultMock),
			Timeout: getEnvAsDuration("AGENT_TIMEOUT", "30s"),
			Sinks:   splitList(getEnv("AGENT_SINKS", "airtable,gmail,calendar")),
			MyEmail: getEnv("MY_EMAIL", ""),
			MyName:  getEnv("MY_NAME", ""),
		},
		Fireflies: FirefliesConfig{
			APIKey:  getEnv("FIREFLIES_API_KEY", ""),
			BaseURL: getEnv("FIREFLIES_API_URL", "https://api.fireflies.ai"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_API_URL", ""),
		},
		Airtable: AirtableConfig{
			APIKey:  getEnv("AIRTABLE_API_KEY", ""),
			BaseID:  getEnv("AIRTABLE_BASE_ID", ""),
			Table:   getEnv("AIRTABLE_TABLE", "Tasks"),
			BaseURL: getEnv("AIRTABLE_API_URL", "https://api.airtable.com"),
		},
		Gmail: GmailConfig{
			AccessToken: getEnv("GMAIL_OAUTH_BEARER", ""),
			From:        getEnv("GMAIL_FROM", ""),
			NotifyTo:    getEnv("GMAIL_NOTIFY_TO", ""),
			BaseURL:     getEnv("GMAIL_API_URL", "https://gmail.googleapis.com"),
		},
		Calendar: CalendarConfig{
			AccessToken: getEnv("GOOGLE_API_TOKEN", ""),
			CalendarID:  getEnv("GOOGLE_CALENDAR_ID", "primary"),
			BaseURL:     getEnv("GOOGLE_CALENDAR_API_URL", "https://www.googleapis.com/calendar/v3"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "fireflies_agent"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "fireflies-agent-audit"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !c.Agent.UseMock {
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AGENT_USE_MOCK=false")
		}
		if c.Fireflies.APIKey == "" {
			return fmt.Errorf("FIREFLIES_API_KEY is required when AGENT_USE_MOCK=false")
		}
	}
	if len(c.Agent.Sinks) == 0 {
		return fmt.Errorf("AGENT_SINKS must list at least one sink")
	}
	for _, sink := range c.Agent.Sinks {
		switch sink {
		case "airtable", "gmail", "calendar":
		default:
			return fmt.Errorf("unknown sink %q in AGENT_SINKS", sink)
		}
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
