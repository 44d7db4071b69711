package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Inputs    InputsConfig    `yaml:"inputs" envconfig:"INPUTS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Sink      SinkConfig      `yaml:"sink" envconfig:"SINK"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// InputsConfig locates the three source extracts.
// Each path may be a glob, in which case the newest match is used.
type InputsConfig struct {
	Roster    string `yaml:"roster" envconfig:"ROSTER" validate:"required"`
	Headcount string `yaml:"headcount" envconfig:"HEADCOUNT" validate:"required"`
	Standby   string `yaml:"standby" envconfig:"STANDBY" validate:"required"`
	Sheet     string `yaml:"sheet" envconfig:"SHEET"`
}

// OutputConfig controls where the reconciled table is written
type OutputConfig struct {
	Path string `yaml:"path" envconfig:"FILE" validate:"required,endswith=.csv|endswith=.xlsx"`
	BOM  bool   `yaml:"bom" envconfig:"BOM"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration   `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// SinkConfig configures the optional SQL copy of the report.
// An empty Driver disables the sink.
type SinkConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER" validate:"omitempty,oneof=mysql sqlite"`
	DSN    string `yaml:"dsn" envconfig:"DSN" validate:"required_with=Driver"`
	Table  string `yaml:"table" envconfig:"TABLE"`
}

// Enabled reports whether a SQL sink is configured
func (s SinkConfig) Enabled() bool {
	return s.Driver != ""
}

// TelemetryConfig contains OpenTelemetry settings
type TelemetryConfig struct {
	Enabled        bool    `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"omitempty,oneof=stdout none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"omitempty,oneof=prometheus none"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file, a .env file and CREW_* environment variables.
// An empty configFile looks for config.yaml in the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config file", err).
				WithContext("file", configFile)
		}
	}

	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, apperrors.NewConfigError("failed to load env file", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}
	cfg.Report = cfg.Report.Normalized()

	if err := cfg.resolvePaths(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables already set
func loadEnvFile(path string) error {
	if !FileExists(path) {
		return nil
	}
	return godotenv.Load(path)
}

// resolvePaths makes every relative file path absolute against the base directory
func (c *Config) resolvePaths() error {
	paths, err := c.GetPaths()
	if err != nil {
		return err
	}

	c.Paths.BaseDir = paths.BaseDir
	c.Inputs.Roster = paths.Resolve(c.Inputs.Roster)
	c.Inputs.Headcount = paths.Resolve(c.Inputs.Headcount)
	c.Inputs.Standby = paths.Resolve(c.Inputs.Standby)
	c.Output.Path = paths.Resolve(c.Output.Path)
	c.Logging.FilePath = paths.Resolve(c.Logging.FilePath)
	return nil
}

// GetPaths returns the directory layout rooted at the configured base directory
func (c *Config) GetPaths() (*Paths, error) {
	if c.Paths.BaseDir == "" {
		return GetPaths()
	}
	abs, err := filepath.Abs(c.Paths.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", c.Paths.BaseDir, err)
	}
	return NewPaths(abs), nil
}

// Validate checks struct constraints and the report window
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}
	return c.Report.Validate()
}

// findConfigFile returns the first config file found in common locations
func findConfigFile() string {
	locations := []string{
		DefaultConfigFile,
		filepath.Join("configs", DefaultConfigFile),
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/reconciler.log",
		},
		Inputs: InputsConfig{
			Roster:    DefaultRosterFile,
			Headcount: DefaultHeadcountFile,
			Standby:   DefaultStandbyFile,
		},
		Output: OutputConfig{
			Path: DefaultOutputFile,
			BOM:  true,
		},
		Report: DefaultReportConfig(),
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  45 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     5,
				Burst:   10,
			},
		},
		Sink: SinkConfig{
			Table: DefaultSinkTable,
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			ServiceName:    "crew-standby-reconciler",
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}

// normalizeCodes trims codes and drops empty entries.
// envconfig splits "323, 32D" into " 32D" otherwise.
func normalizeCodes(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
