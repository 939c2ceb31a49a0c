// Package config loads apitester settings from YAML files.
//
// Settings are resolved from, in increasing precedence: built-in defaults,
// the global file under the user config directory, a local file in the
// working directory, and finally command line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artpar/apitester/internal/logging"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaseURL      = "http://localhost:5000"
	DefaultHealthPath   = "/api/health"
	DefaultPollInterval = 30 * time.Second
	DefaultTimeout      = 30 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// MinPollInterval is the shortest schedule the poller supports.
const MinPollInterval = time.Second

// Where a setting came from.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// GlobalConfigDir is the directory under os.UserConfigDir holding the
// global file.
const GlobalConfigDir = "apitester"

// LocalConfigFileNames are searched in the working directory, in order.
var LocalConfigFileNames = []string{".apitester.yaml", ".apitester.yml"}

// GlobalConfigFileNames are searched in the global directory, in order.
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// Config holds resolved settings.
type Config struct {
	BaseURL      string        `yaml:"baseUrl,omitempty"`
	HealthPath   string        `yaml:"healthPath,omitempty"`
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	LogLevel     string        `yaml:"logLevel,omitempty"`
	LogFormat    string        `yaml:"logFormat,omitempty"`

	// Sources maps each yaml key to where its value came from.
	Sources map[string]string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		HealthPath:   DefaultHealthPath,
		PollInterval: DefaultPollInterval,
		Timeout:      DefaultTimeout,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources: map[string]string{
			"baseUrl":      SourceDefault,
			"healthPath":   SourceDefault,
			"pollInterval": SourceDefault,
			"timeout":      SourceDefault,
			"logLevel":     SourceDefault,
			"logFormat":    SourceDefault,
		},
	}
}

// Error is a configuration file problem.
type Error struct {
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// LoadFile reads a single YAML file. Unset keys stay zero.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Path: path, Message: err.Error()}
	}
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// FindLocal returns the first local config file in dir, or "".
func FindLocal(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindGlobal returns the global config file, or "" when there is none.
func FindGlobal() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load resolves settings. An explicit path replaces file discovery and must
// exist; otherwise the global and local files are merged over the defaults
// when present.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if explicit != "" {
		file, err := LoadFile(explicit)
		if err != nil {
			return nil, err
		}
		Merge(cfg, file, SourceLocal)
		return cfg, cfg.Validate()
	}

	if path := FindGlobal(); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		Merge(cfg, file, SourceGlobal)
	}

	if cwd, err := os.Getwd(); err == nil {
		if path := FindLocal(cwd); path != "" {
			file, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			Merge(cfg, file, SourceLocal)
		}
	}

	return cfg, cfg.Validate()
}

// Merge applies the non-zero fields of source onto target.
func Merge(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.BaseURL != "" {
		target.BaseURL = source.BaseURL
		target.Sources["baseUrl"] = sourceType
	}
	if source.HealthPath != "" {
		target.HealthPath = source.HealthPath
		target.Sources["healthPath"] = sourceType
	}
	if source.PollInterval != 0 {
		target.PollInterval = source.PollInterval
		target.Sources["pollInterval"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("baseUrl is required"))
	}
	if c.PollInterval < MinPollInterval {
		errs = append(errs, fmt.Errorf("pollInterval must be at least %s, got %s", MinPollInterval, c.PollInterval))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown logLevel %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown logFormat %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return &Error{Message: errors.Join(errs...).Error()}
	}
	return nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}
