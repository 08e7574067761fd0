package parsekit

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/parsekit/diagnostic"
	"github.com/shibukawa/parsekit/feed"
	"github.com/shibukawa/parsekit/grammar/arith"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the parsekit configuration
type Config struct {
	Trace      bool             `yaml:"trace"`
	Color      string           `yaml:"color"`
	Stream     StreamConfig     `yaml:"stream"`
	Arith      ArithConfig      `yaml:"arith"`
	Diagnostic DiagnosticConfig `yaml:"diagnostic"`
	Path       PathConfig       `yaml:"path"`
}

// StreamConfig represents streaming scanner settings
type StreamConfig struct {
	ChunkSize int `yaml:"chunk_size"`
	MaxBuffer int `yaml:"max_buffer"` // 0 means unlimited
}

// ArithConfig represents arithmetic evaluation settings
type ArithConfig struct {
	DivisionPrecision int32 `yaml:"division_precision"`
}

// DiagnosticConfig represents error report settings
type DiagnosticConfig struct {
	TabWidth     int    `yaml:"tab_width"`
	HideContexts bool   `yaml:"hide_contexts"`
	SourceName   string `yaml:"source_name"` // name shown for stdin input
}

// PathConfig represents default documents of the path command
type PathConfig struct {
	Data   string `yaml:"data"`
	Schema string `yaml:"schema"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	if !fileExists(configPath) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// LoadRequiredConfig is LoadConfig for a path the user asked for explicitly.
// A missing file is an error instead of a default configuration.
func LoadRequiredConfig(configPath string) (*Config, error) {
	if !fileExists(configPath) {
		return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	return LoadConfig(configPath)
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validColors := map[string]bool{
		ColorAuto:   true,
		ColorAlways: true,
		ColorNever:  true,
	}
	if config.Color != "" && !validColors[config.Color] {
		return fmt.Errorf("%w: invalid color '%s': must be one of auto, always, never", ErrConfigValidation, config.Color)
	}

	if config.Stream.ChunkSize < 0 {
		return fmt.Errorf("%w: stream.chunk_size must be non-negative, got %d", ErrConfigValidation, config.Stream.ChunkSize)
	}

	if config.Stream.MaxBuffer < 0 {
		return fmt.Errorf("%w: stream.max_buffer must be non-negative, got %d", ErrConfigValidation, config.Stream.MaxBuffer)
	}

	if config.Stream.MaxBuffer > 0 && config.Stream.ChunkSize > config.Stream.MaxBuffer {
		return fmt.Errorf("%w: stream.chunk_size (%d) must not exceed stream.max_buffer (%d)", ErrConfigValidation, config.Stream.ChunkSize, config.Stream.MaxBuffer)
	}

	if config.Arith.DivisionPrecision < 0 {
		return fmt.Errorf("%w: arith.division_precision must be non-negative, got %d", ErrConfigValidation, config.Arith.DivisionPrecision)
	}

	if config.Diagnostic.TabWidth < 0 || config.Diagnostic.TabWidth > 16 {
		return fmt.Errorf("%w: diagnostic.tab_width must be between 0 and 16, got %d", ErrConfigValidation, config.Diagnostic.TabWidth)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Trace: false,
		Color: ColorAuto,
		Stream: StreamConfig{
			ChunkSize: feed.DefaultChunkSize,
			MaxBuffer: 1 << 20,
		},
		Arith: ArithConfig{
			DivisionPrecision: arith.DefaultDivisionPrecision,
		},
		Diagnostic: DiagnosticConfig{
			TabWidth:   diagnostic.DefaultTabWidth,
			SourceName: "stdin",
		},
	}
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Color == "" {
		config.Color = defaults.Color
	}

	if config.Stream.ChunkSize == 0 {
		config.Stream.ChunkSize = defaults.Stream.ChunkSize
	}

	// max_buffer: 0 stays unlimited when set explicitly, so it has no default here

	if config.Arith.DivisionPrecision == 0 {
		config.Arith.DivisionPrecision = defaults.Arith.DivisionPrecision
	}

	if config.Diagnostic.TabWidth == 0 {
		config.Diagnostic.TabWidth = defaults.Diagnostic.TabWidth
	}

	if config.Diagnostic.SourceName == "" {
		config.Diagnostic.SourceName = defaults.Diagnostic.SourceName
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in string settings
func expandConfigEnvVars(config *Config) {
	config.Diagnostic.SourceName = expandEnvVars(config.Diagnostic.SourceName)
	config.Path.Data = expandEnvVars(config.Path.Data)
	config.Path.Schema = expandEnvVars(config.Path.Schema)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ScannerOptions returns the feed options of the stream settings.
func (c *Config) ScannerOptions() feed.Options {
	return feed.Options{ChunkSize: c.Stream.ChunkSize, MaxBuffer: c.Stream.MaxBuffer}
}

// DiagnosticOptions returns the report options of the diagnostic settings.
func (c *Config) DiagnosticOptions() diagnostic.Options {
	return diagnostic.Options{TabWidth: c.Diagnostic.TabWidth, HideContexts: c.Diagnostic.HideContexts}
}

// UseColor decides whether output should be colorized. terminal tells whether
// the output is a terminal; it matters only in auto mode.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
