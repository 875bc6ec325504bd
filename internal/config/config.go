package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "OPTIMIZE"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Assistant AssistantConfig `yaml:"assistant" envconfig:"ASSISTANT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST" default:"0.0.0.0"`
	Port            int           `yaml:"port" envconfig:"PORT" default:"5001"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"*"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig locates the demo data. An empty DataDir means the project
// root, found relative to the executable.
type PathsConfig struct {
	DataDir     string `yaml:"data_dir" envconfig:"DATA_DIR"`
	MediumFile  string `yaml:"medium_file" envconfig:"MEDIUM_FILE" default:"demo_data_medium.csv"`
	SmallFile   string `yaml:"small_file" envconfig:"SMALL_FILE" default:"demo_data_small.csv"`
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE"`
}

// AnalyticsConfig holds request defaults for the dashboard endpoints
type AnalyticsConfig struct {
	DefaultWindowDays int `yaml:"default_window_days" envconfig:"DEFAULT_WINDOW_DAYS" default:"30"`
	DefaultLimit      int `yaml:"default_limit" envconfig:"DEFAULT_LIMIT" default:"10"`
}

// AssistantConfig configures the research assistant. The key is only
// checked for presence.
type AssistantConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key" envconfig:"OPENAI_API_KEY"`
}

// TelemetryConfig contains OpenTelemetry settings
type TelemetryConfig struct {
	ServiceName    string  `yaml:"service_name" envconfig:"SERVICE_NAME" default:"optimize-analytics"`
	Environment    string  `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" default:"prometheus"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1.0"`
}

// Load loads configuration from environment variables and config file.
// Environment values win over the file; the file wins over defaults.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs fills the env config from the file config wherever the env
// value is still the built-in default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	d := Default()

	pick(&envConfig.Server.Host, fileConfig.Server.Host, d.Server.Host)
	pick(&envConfig.Server.Port, fileConfig.Server.Port, d.Server.Port)
	pick(&envConfig.Server.ReadTimeout, fileConfig.Server.ReadTimeout, d.Server.ReadTimeout)
	pick(&envConfig.Server.WriteTimeout, fileConfig.Server.WriteTimeout, d.Server.WriteTimeout)
	pick(&envConfig.Server.IdleTimeout, fileConfig.Server.IdleTimeout, d.Server.IdleTimeout)
	pick(&envConfig.Server.MaxHeaderBytes, fileConfig.Server.MaxHeaderBytes, d.Server.MaxHeaderBytes)
	pick(&envConfig.Server.ShutdownTimeout, fileConfig.Server.ShutdownTimeout, d.Server.ShutdownTimeout)
	pick(&envConfig.Server.RequestTimeout, fileConfig.Server.RequestTimeout, d.Server.RequestTimeout)

	if len(fileConfig.Security.AllowedOrigins) > 0 && equalStrings(envConfig.Security.AllowedOrigins, d.Security.AllowedOrigins) {
		envConfig.Security.AllowedOrigins = fileConfig.Security.AllowedOrigins
	}
	pick(&envConfig.Security.RateLimit.RPS, fileConfig.Security.RateLimit.RPS, d.Security.RateLimit.RPS)
	pick(&envConfig.Security.RateLimit.Burst, fileConfig.Security.RateLimit.Burst, d.Security.RateLimit.Burst)

	pick(&envConfig.Logging.Level, fileConfig.Logging.Level, d.Logging.Level)
	pick(&envConfig.Logging.Format, fileConfig.Logging.Format, d.Logging.Format)
	pick(&envConfig.Logging.Output, fileConfig.Logging.Output, d.Logging.Output)
	pick(&envConfig.Logging.FilePath, fileConfig.Logging.FilePath, d.Logging.FilePath)

	pick(&envConfig.Paths.DataDir, fileConfig.Paths.DataDir, d.Paths.DataDir)
	pick(&envConfig.Paths.MediumFile, fileConfig.Paths.MediumFile, d.Paths.MediumFile)
	pick(&envConfig.Paths.SmallFile, fileConfig.Paths.SmallFile, d.Paths.SmallFile)
	pick(&envConfig.Paths.DatasetFile, fileConfig.Paths.DatasetFile, d.Paths.DatasetFile)

	pick(&envConfig.Analytics.DefaultWindowDays, fileConfig.Analytics.DefaultWindowDays, d.Analytics.DefaultWindowDays)
	pick(&envConfig.Analytics.DefaultLimit, fileConfig.Analytics.DefaultLimit, d.Analytics.DefaultLimit)

	pick(&envConfig.Assistant.OpenAIAPIKey, fileConfig.Assistant.OpenAIAPIKey, d.Assistant.OpenAIAPIKey)

	pick(&envConfig.Telemetry.ServiceName, fileConfig.Telemetry.ServiceName, d.Telemetry.ServiceName)
	pick(&envConfig.Telemetry.Environment, fileConfig.Telemetry.Environment, d.Telemetry.Environment)
	pick(&envConfig.Telemetry.TraceExporter, fileConfig.Telemetry.TraceExporter, d.Telemetry.TraceExporter)
	pick(&envConfig.Telemetry.MetricExporter, fileConfig.Telemetry.MetricExporter, d.Telemetry.MetricExporter)
	pick(&envConfig.Telemetry.SampleRatio, fileConfig.Telemetry.SampleRatio, d.Telemetry.SampleRatio)

	return envConfig
}

func pick[T comparable](dst *T, fileValue, defaultValue T) {
	var zero T
	if *dst == defaultValue && fileValue != zero {
		*dst = fileValue
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Paths.MediumFile == "" || c.Paths.SmallFile == "" {
		return fmt.Errorf("both demo data file names must be set")
	}

	if c.Analytics.DefaultWindowDays <= 0 {
		return fmt.Errorf("default window must be positive: %d", c.Analytics.DefaultWindowDays)
	}

	if c.Analytics.DefaultLimit < 0 {
		return fmt.Errorf("default limit must not be negative: %d", c.Analytics.DefaultLimit)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	// Always JSON
	c.Logging.Format = "json"

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
		"../../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// HasOpenAIKey reports whether an OpenAI key is configured, either in the
// assistant section or as the conventional unprefixed OPENAI_API_KEY.
func (c *Config) HasOpenAIKey() bool {
	return c.Assistant.OpenAIAPIKey != "" || os.Getenv("OPENAI_API_KEY") != ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            DefaultPort,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			MediumFile: MediumDataFile,
			SmallFile:  SmallDataFile,
		},
		Analytics: AnalyticsConfig{
			DefaultWindowDays: DefaultWindowDays,
			DefaultLimit:      DefaultRecommendationLimit,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "optimize-analytics",
			Environment:    "development",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
	}
}
