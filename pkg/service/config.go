// Package service holds the daemon-level configuration for fusiongend.
package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fabricware/fusiongen/pkg/errors"
	"github.com/fabricware/fusiongen/pkg/logger"
)

// Config is the fusiongend service configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Workdir is the root directory for generated artifacts.
	Workdir string `yaml:"workdir"`

	// DatabasePath is the sqlite generation-history database. Defaults to
	// fusiongen.db inside Workdir.
	DatabasePath string `yaml:"database_path"`

	// MaxUploadBytes caps the size of one upload request.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// AllowedExtensions is the upload file-type allow list.
	AllowedExtensions []string `yaml:"allowed_extensions"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:            ":5001",
		Workdir:           "/var/lib/fusiongen",
		MaxUploadBytes:    5 * 1024 * 1024,
		AllowedExtensions: []string{".txt", ".cfg", ".conf"},
		LogLevel:          "info",
	}
}

// Load reads and validates the service configuration from a YAML file.
// A missing path returns the defaults; unknown fields are rejected so typos
// surface as errors instead of silently ignored settings.
func Load(path string, log *logger.Logger) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, cfg.finalize()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.ConfigParseError(path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	if log != nil {
		log.Info("Service configuration loaded",
			"path", path,
			"listen", cfg.Listen,
			"workdir", cfg.Workdir,
		)
	}
	return cfg, nil
}

// finalize fills derived defaults and validates the result.
func (c *Config) finalize() error {
	if c.Listen == "" {
		return errors.New(
			errors.ErrCodeConfigValidation,
			"Listen address is empty",
			"The service cannot start without a listen address",
			"Set 'listen' in the configuration file, e.g. ':5001'",
		)
	}
	if c.Workdir == "" {
		return errors.New(
			errors.ErrCodeConfigValidation,
			"Workdir is empty",
			"Generated artifacts need a directory to be written to",
			"Set 'workdir' in the configuration file",
		)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New(
			errors.ErrCodeConfigValidation,
			fmt.Sprintf("Invalid max_upload_bytes: %d", c.MaxUploadBytes),
			"The upload size limit must be positive",
			"Set 'max_upload_bytes' to a positive byte count",
		)
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.Workdir, "fusiongen.db")
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = DefaultConfig().AllowedExtensions
	}
	return nil
}

// ExtensionAllowed reports whether filename carries an allowed extension.
func (c *Config) ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
