package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by Load.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// APIPrefix is mounted in front of every route when UseAPIPrefix is set.
const APIPrefix = "/api/v1"

// Config holds runtime configuration sourced from env vars. It is built once at
// startup and passed by value; nothing reads it from package state.
type Config struct {
	ProjectName  string
	Port         string
	Storage      string
	DatabaseURL  string
	DBMaxConns   int32
	JWTSecret    string
	JWTAlgorithm string
	JWTIssuer    string
	JWTTTL       time.Duration
	CORSOrigins  []string
	UseAPIPrefix bool
	SeedFile     string
	LogLevel     string
	LogFormat    string
}

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		ProjectName:  fallback(os.Getenv("PROJECT_NAME"), "Finance Mirror API"),
		Port:         fallback(os.Getenv("PORT"), "8080"),
		Storage:      strings.ToLower(fallback(os.Getenv("STORAGE"), StoragePostgres)),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAlgorithm: strings.ToUpper(fallback(os.Getenv("JWT_ALGORITHM"), "HS256")),
		JWTIssuer:    fallback(os.Getenv("JWT_ISSUER"), "finance-backend"),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		UseAPIPrefix: parseBool(os.Getenv("USE_API_PREFIX"), false),
		SeedFile:     strings.TrimSpace(os.Getenv("SEED_FILE")),
		LogLevel:     strings.ToLower(fallback(os.Getenv("LOG_LEVEL"), "info")),
		LogFormat:    strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "text")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	maxConns := fallback(os.Getenv("DB_MAX_CONNS"), "10")
	if n, err := strconv.ParseInt(maxConns, 10, 32); err == nil && n > 0 {
		cfg.DBMaxConns = int32(n)
	} else {
		cfg.DBMaxConns = 10
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case StorageMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE %q", cfg.Storage)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if _, ok := supportedAlgorithms[cfg.JWTAlgorithm]; !ok {
		return Config{}, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// RoutePrefix returns the path prefix every route is mounted under.
func (c Config) RoutePrefix() string {
	if c.UseAPIPrefix {
		return APIPrefix
	}
	return ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseBool(value string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
		return b
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
