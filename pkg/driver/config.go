package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "endium.yml"

// ErrConfigNotFound is returned by FindConfig when no endium.yml exists in
// the start directory or any of its parents.
var ErrConfigNotFound = errors.New(ConfigFileName + " not found")

// LogFormat selects the trace handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config represents the parsed contents of endium.yml.
type Config struct {
	Path        string
	MaxDepth    int
	StopOnError bool
	Trace       bool
	LogFormat   LogFormat
	PrintTokens bool
}

// DefaultConfig is used when no configuration file is present.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:  256,
		LogFormat: LogFormatText,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	MaxDepth    *int   `yaml:"max_depth"`
	StopOnError bool   `yaml:"stop_on_error"`
	Trace       bool   `yaml:"trace"`
	LogFormat   string `yaml:"log_format"`
	PrintTokens bool   `yaml:"print_tokens"`
}

// LoadConfig parses endium.yml from disk, returning a validated config.
// An empty file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	return raw.toConfig(absPath)
}

func (cf configFile) toConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.StopOnError = cf.StopOnError
	cfg.Trace = cf.Trace
	cfg.PrintTokens = cf.PrintTokens

	errs := ValidationError{Path: path}
	if cf.MaxDepth != nil {
		if *cf.MaxDepth <= 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must be positive, got %d", *cf.MaxDepth))
		} else {
			cfg.MaxDepth = *cf.MaxDepth
		}
	}
	if format := strings.TrimSpace(cf.LogFormat); format != "" {
		switch LogFormat(strings.ToLower(format)) {
		case LogFormatText:
			cfg.LogFormat = LogFormatText
		case LogFormatJSON:
			cfg.LogFormat = LogFormatJSON
		default:
			errs.Issues = append(errs.Issues, fmt.Sprintf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, format))
		}
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// FindConfig walks upward from start looking for endium.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolveConfig loads the explicit path when given, otherwise the nearest
// endium.yml above start, falling back to the defaults.
func ResolveConfig(explicit, start string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	path, err := FindConfig(start)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}
