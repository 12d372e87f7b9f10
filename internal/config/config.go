package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://heroic-ats-frontend.vercel.app",
	"https://heroic-ats-platform-738207385737.us-central1.run.app",
}

type Config struct {
	Server       ServerConfig
	CORS         CORSConfig
	Database     DatabaseConfig
	Gemini       GeminiConfig
	LLM          LLMConfig
	Prompt       PromptConfig
	Storage      StorageConfig
	Conversation ConversationConfig
	Errors       ErrorsConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

type LLMConfig struct {
	MaxAttempts int
	Timeout     time.Duration
}

type PromptConfig struct {
	Version      string
	TemplatePath string
}

type StorageConfig struct {
	MaxFileSize int64
}

type ConversationConfig struct {
	Store    string
	MaxTurns int
}

type ErrorsConfig struct {
	ExposeDetails bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			Env:          getEnv("ENV", "development"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", "180s"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_platform"),
		},
		Gemini: GeminiConfig{
			APIKey:          getEnv("GOOGLE_API_KEY", ""),
			Model:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.7),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 8192)),
		},
		LLM: LLMConfig{
			MaxAttempts: getEnvAsInt("LLM_MAX_ATTEMPTS", 1),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", "0s"),
		},
		Prompt: PromptConfig{
			Version:      getEnv("PROMPT_VERSION", "ats_v1"),
			TemplatePath: getEnv("PROMPT_TEMPLATE_PATH", ""),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Conversation: ConversationConfig{
			Store:    strings.ToLower(getEnv("CONVERSATION_STORE", StoreMemory)),
			MaxTurns: getEnvAsInt("CONVERSATION_MAX_TURNS", 0),
		},
		Errors: ErrorsConfig{
			ExposeDetails: getEnvAsBool("EXPOSE_ERROR_DETAILS", true),
		},
	}
}

// Validate reports configuration that must stop the process at startup.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return errors.New("google API key is missing: set GOOGLE_API_KEY in the environment or .env file")
	}

	switch c.Conversation.Store {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("invalid CONVERSATION_STORE %q: want %q or %q", c.Conversation.Store, StoreMemory, StorePostgres)
	}

	if c.Conversation.MaxTurns < 0 {
		return fmt.Errorf("invalid CONVERSATION_MAX_TURNS %d: must not be negative", c.Conversation.MaxTurns)
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("invalid LLM_MAX_ATTEMPTS %d: must be at least 1", c.LLM.MaxAttempts)
	}
	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("invalid MAX_FILE_SIZE %d: must be positive", c.Storage.MaxFileSize)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if origin == "*" {
			return errors.New("CORS_ALLOWED_ORIGINS cannot contain \"*\": credentials are allowed, list origins explicitly")
		}
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
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
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsSlice splits a comma separated value, dropping blank entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
