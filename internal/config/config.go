package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"godilemma/internal/errors"
)

// Config represents the complete application configuration. It is built
// once per process and passed explicitly to the components that need it.
type Config struct {
	Engine    EngineConfig
	Precedent PrecedentConfig
	Logging   LoggingConfig
	Server    ServerConfig
}

// EngineConfig holds the tunables of the resolution pipeline
type EngineConfig struct {
	Workers                int
	WeightFloor            float64
	WeightPrecision        int
	SensitivityCutoff      float64
	MaxBisectionIterations int
}

// PrecedentConfig holds precedent lookup settings
type PrecedentConfig struct {
	DSN           string
	Timeout       time.Duration
	MinSimilarity float64
	TopK          int
	ScanBudget    int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port string
}

// Default returns the configuration used when no environment overrides exist.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Workers:                runtime.GOMAXPROCS(0),
			WeightFloor:            0.15,
			WeightPrecision:        4,
			SensitivityCutoff:      0.3,
			MaxBisectionIterations: 10,
		},
		Precedent: PrecedentConfig{
			Timeout:       2 * time.Second,
			MinSimilarity: 0.1,
			TopK:          3,
			ScanBudget:    500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads configuration from the environment (and a .env file when one is
// present) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	def := Default()
	config := &Config{
		Engine: EngineConfig{
			Workers:                getEnvIntOrDefault("DILEMMA_WORKERS", def.Engine.Workers),
			WeightFloor:            getEnvFloatOrDefault("WEIGHT_FLOOR", def.Engine.WeightFloor),
			WeightPrecision:        getEnvIntOrDefault("WEIGHT_PRECISION", def.Engine.WeightPrecision),
			SensitivityCutoff:      getEnvFloatOrDefault("SENSITIVITY_CUTOFF", def.Engine.SensitivityCutoff),
			MaxBisectionIterations: getEnvIntOrDefault("MAX_BISECTION_ITERATIONS", def.Engine.MaxBisectionIterations),
		},
		Precedent: PrecedentConfig{
			DSN:           getEnvOrDefault("PRECEDENT_DSN", def.Precedent.DSN),
			Timeout:       getEnvDurationOrDefault("PRECEDENT_TIMEOUT", def.Precedent.Timeout),
			MinSimilarity: getEnvFloatOrDefault("PRECEDENT_MIN_SIMILARITY", def.Precedent.MinSimilarity),
			TopK:          getEnvIntOrDefault("PRECEDENT_TOP_K", def.Precedent.TopK),
			ScanBudget:    getEnvIntOrDefault("PRECEDENT_SCAN_BUDGET", def.Precedent.ScanBudget),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", def.Logging.Level),
			Format: getEnvOrDefault("LOG_FORMAT", def.Logging.Format),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", def.Server.Port),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate rejects out-of-range engine and precedent settings.
func Validate(config *Config) error {
	if config.Engine.Workers < 1 {
		return errors.ConfigInvalid("DILEMMA_WORKERS must be at least 1")
	}
	if config.Engine.WeightFloor < 0 || config.Engine.WeightFloor >= 0.5 {
		return errors.ConfigInvalid("WEIGHT_FLOOR must be in [0, 0.5)")
	}
	if config.Engine.WeightPrecision < 2 || config.Engine.WeightPrecision > 10 {
		return errors.ConfigInvalid("WEIGHT_PRECISION must be between 2 and 10")
	}
	if config.Engine.SensitivityCutoff < 0 || config.Engine.SensitivityCutoff > 1 {
		return errors.ConfigInvalid("SENSITIVITY_CUTOFF must be in [0, 1]")
	}
	if config.Engine.MaxBisectionIterations < 1 {
		return errors.ConfigInvalid("MAX_BISECTION_ITERATIONS must be at least 1")
	}
	if config.Precedent.Timeout <= 0 {
		return errors.ConfigInvalid("PRECEDENT_TIMEOUT must be positive")
	}
	if config.Precedent.TopK < 1 {
		return errors.ConfigInvalid("PRECEDENT_TOP_K must be at least 1")
	}
	if config.Precedent.ScanBudget < 1 {
		return errors.ConfigInvalid("PRECEDENT_SCAN_BUDGET must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
