package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Simplici0/toolcost/internal/consumption"
)

const (
	defaultDBPath     = "./toolcost.db"
	defaultPort       = "8080"
	defaultEnv        = "dev"
	defaultLogFormat  = "text"
	defaultLogLevel   = "info"
	defaultSessionTTL = 12 * time.Hour
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	DBPath        string
	SessionSecret string
	SessionTTL    time.Duration
	LogFormat     string
	LogLevel      string
	// PublicHost overrides the detected LAN address in share links.
	PublicHost string

	WorkingDays    float64
	DepthPerHole   float64
	MinutesPerPart float64
	PartValue      float64

	// Warnings lists settings Load replaced with defaults. Load runs before the
	// logger exists, so callers log them with LogWarnings.
	Warnings []Warning
}

// Warning describes one ignored setting.
type Warning struct {
	Key     string
	Value   string
	Message string
}

// LogWarnings writes every collected warning to logger.
func (c Config) LogWarnings(logger *slog.Logger) {
	for _, w := range c.Warnings {
		logger.Warn(w.Message, "key", w.Key, "value", w.Value)
	}
}

// IsDev reports whether the app runs in development mode, where migrations run on start.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == defaultEnv
}

// AnnualParams returns the comparison settings derived from the config.
func (c Config) AnnualParams() consumption.AnnualParams {
	return consumption.AnnualParams{
		WorkingDays:    c.WorkingDays,
		MinutesPerPart: c.MinutesPerPart,
		PartValue:      c.PartValue,
	}
}

// DefaultBasis is the job size a new session starts with.
func (c Config) DefaultBasis() consumption.Basis {
	return consumption.Basis{
		Mode:         consumption.ModeDistance,
		Distance:     30,
		Holes:        1000,
		DepthPerHole: c.DepthPerHole,
	}
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: a missing .env is normal outside local development.
	// godotenv never overwrites variables that are already set.
	_ = godotenv.Load(".env")

	annual := consumption.DefaultAnnualParams()
	var warnings []Warning

	cfg := Config{
		Env:            strings.ToLower(os.Getenv("APP_ENV")),
		Port:           os.Getenv("PORT"),
		DBPath:         os.Getenv("DB_PATH"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     envDuration("SESSION_TTL", defaultSessionTTL, &warnings),
		LogFormat:      strings.ToLower(os.Getenv("LOG_FORMAT")),
		LogLevel:       strings.ToLower(os.Getenv("LOG_LEVEL")),
		PublicHost:     os.Getenv("PUBLIC_HOST"),
		WorkingDays:    envFloat("WORKING_DAYS", annual.WorkingDays, &warnings),
		DepthPerHole:   envFloat("DEPTH_PER_HOLE", consumption.DefaultDepthPerHole, &warnings),
		MinutesPerPart: envFloat("MINUTES_PER_PART", annual.MinutesPerPart, &warnings),
		PartValue:      envFloat("PART_VALUE", annual.PartValue, &warnings),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.DepthPerHole <= 0 {
		warnings = append(warnings, Warning{
			Key:     "DEPTH_PER_HOLE",
			Value:   os.Getenv("DEPTH_PER_HOLE"),
			Message: "depth per hole must be positive, using default",
		})
		cfg.DepthPerHole = consumption.DefaultDepthPerHole
	}

	cfg.Warnings = warnings
	return cfg
}

func envFloat(key string, fallback float64, warnings *[]Warning) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*warnings = append(*warnings, Warning{Key: key, Value: raw, Message: "ignoring malformed numeric setting"})
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration, warnings *[]Warning) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*warnings = append(*warnings, Warning{Key: key, Value: raw, Message: "ignoring malformed duration setting"})
		return fallback
	}
	return v
}
