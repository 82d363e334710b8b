package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings is the typed configuration of the whole process. It is built once at
// startup and handed to each module explicitly.
type Settings struct {
	Server    ServerSettings    `yaml:"server"`
	Database  DatabaseSettings  `yaml:"database"`
	Log       LogSettings       `yaml:"log"`
	Countries CountriesSettings `yaml:"countries"`
	Profile   ProfileSettings   `yaml:"profile"`
}

// ServerSettings configures the HTTP listener and its middleware
type ServerSettings struct {
	Port           string   `yaml:"port" validate:"required,numeric"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int      `yaml:"rate_limit_burst" validate:"gte=0"`
	AdminAPIKey    string   `yaml:"-"`
}

// DatabaseSettings selects and configures the storage backend
type DatabaseSettings struct {
	Driver        string `yaml:"driver" validate:"oneof=mysql sqlite memory"`
	MySQLHost     string `yaml:"mysql_host" validate:"required_if=Driver mysql"`
	MySQLPort     string `yaml:"mysql_port" validate:"required_if=Driver mysql"`
	MySQLUser     string `yaml:"mysql_user" validate:"required_if=Driver mysql"`
	MySQLPassword string `yaml:"-"`
	MySQLDatabase string `yaml:"mysql_database" validate:"required_if=Driver mysql"`
	SQLitePath    string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`
}

// LogSettings configures the process logger
type LogSettings struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// CountriesSettings configures the country cache and its upstream sources
type CountriesSettings struct {
	CountriesURL  string        `yaml:"countries_url" validate:"required,url"`
	RatesURL      string        `yaml:"rates_url" validate:"required,url"`
	Timeout       time.Duration `yaml:"timeout" validate:"gt=0"`
	RefreshSpec   string        `yaml:"refresh_spec"`
	CacheDir      string        `yaml:"cache_dir" validate:"required"`
	MinMultiplier int           `yaml:"min_multiplier" validate:"gt=0"`
	MaxMultiplier int           `yaml:"max_multiplier" validate:"gtefield=MinMultiplier"`
}

// ProfileSettings configures the identity returned by the profile endpoint
type ProfileSettings struct {
	Email       string        `yaml:"email" validate:"required,email"`
	Name        string        `yaml:"name" validate:"required"`
	Stack       string        `yaml:"stack" validate:"required"`
	FactURL     string        `yaml:"fact_url" validate:"required,url"`
	FactTimeout time.Duration `yaml:"fact_timeout" validate:"gt=0"`
}

// LoadSettings builds Settings from a Config, overlays the optional YAML file named
// by SETTINGS_FILE and validates the result
func LoadSettings(cfg *Config) (*Settings, error) {
	s := &Settings{
		Server: ServerSettings{
			Port:           cfg.GetWithDefault("API_PORT", "8080"),
			AllowedOrigins: cfg.GetList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPS:   cfg.GetFloatWithDefault("RATE_LIMIT_RPS", 20),
			RateLimitBurst: cfg.GetIntWithDefault("RATE_LIMIT_BURST", 40),
			AdminAPIKey:    cfg.Get("ADMIN_API_KEY"),
		},
		Database: DatabaseSettings{
			Driver:        cfg.Get("DB_DRIVER"),
			MySQLHost:     cfg.GetWithDefault("MYSQL_HOST", "localhost"),
			MySQLPort:     cfg.GetWithDefault("MYSQL_PORT", "3306"),
			MySQLUser:     cfg.GetWithDefault("MYSQL_USER", "root"),
			MySQLPassword: cfg.Get("MYSQL_ROOT_PASSWORD"),
			MySQLDatabase: cfg.Get("MYSQL_DATABASE"),
			SQLitePath:    cfg.GetWithDefault("SQLITE_PATH", "analyzer.db"),
		},
		Log: LogSettings{
			Level:  cfg.GetWithDefault("LOG_LEVEL", "info"),
			Format: cfg.GetWithDefault("LOG_FORMAT", "json"),
		},
		Countries: CountriesSettings{
			CountriesURL:  cfg.GetWithDefault("COUNTRIES_URL", "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"),
			RatesURL:      cfg.GetWithDefault("EXCHANGE_RATES_URL", "https://open.er-api.com/v6/latest/USD"),
			Timeout:       cfg.GetDurationWithDefault("COUNTRIES_TIMEOUT", 10*time.Second),
			RefreshSpec:   cfg.GetWithDefault("COUNTRIES_REFRESH_SPEC", "@every 12h"),
			CacheDir:      cfg.GetWithDefault("CACHE_DIR", "cache"),
			MinMultiplier: cfg.GetIntWithDefault("GDP_MIN_MULTIPLIER", 1000),
			MaxMultiplier: cfg.GetIntWithDefault("GDP_MAX_MULTIPLIER", 2000),
		},
		Profile: ProfileSettings{
			Email:       cfg.GetWithDefault("PROFILE_EMAIL", "developer@example.com"),
			Name:        cfg.GetWithDefault("PROFILE_FULL_NAME", "Analyzer Developer"),
			Stack:       cfg.GetWithDefault("PROFILE_STACK", "Go/Gin"),
			FactURL:     cfg.GetWithDefault("CATFACT_URL", "https://catfact.ninja/fact"),
			FactTimeout: cfg.GetDurationWithDefault("CATFACT_TIMEOUT", 2500*time.Millisecond),
		},
	}

	// Pick a database driver when none is set explicitly
	if s.Database.Driver == "" {
		if s.Database.MySQLDatabase != "" {
			s.Database.Driver = "mysql"
		} else {
			s.Database.Driver = "memory"
		}
	}

	if path := cfg.Get("SETTINGS_FILE"); path != "" {
		if err := s.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// overlayFile merges the sections present in a YAML file over the current values
func (s *Settings) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	return nil
}

// Validate checks every section against its validation tags
func (s *Settings) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
