package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/thushan/ollaview/internal/version"
)

const (
	DefaultServiceURL  = "http://localhost:11434"
	DefaultTagsPath    = "/api/tags"
	DefaultTimeout     = 5 * time.Second
	DefaultMaxBodySize = 10 * 1024 * 1024

	DefaultWindowTitle  = "Ollama 模型查看器"
	DefaultIconFile     = "icon.txt"
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400

	// nominal cell size used to turn logical units into terminal cells
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// DefaultConfig returns the fixed configuration. The endpoint is deliberately
// not user configurable.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			URL:         DefaultServiceURL,
			TagsPath:    DefaultTagsPath,
			Timeout:     DefaultTimeout,
			MaxBodySize: DefaultMaxBodySize,
		},
		Window: WindowConfig{
			Title:    DefaultWindowTitle,
			IconFile: DefaultIconFile,
			Width:    DefaultWindowWidth,
			Height:   DefaultWindowHeight,
			CellW:    DefaultCellWidth,
			CellH:    DefaultCellHeight,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        defaultLogDir(),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Theme: "default",
	}
}

// Load builds the configuration through viper. Only defaults are registered,
// no config file or environment is consulted.
func Load() (*Config, error) {
	v := viper.New()
	registerDefaults(v, DefaultConfig())

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func registerDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("service.url", d.Service.URL)
	v.SetDefault("service.tags_path", d.Service.TagsPath)
	v.SetDefault("service.timeout", d.Service.Timeout)
	v.SetDefault("service.max_body_size", d.Service.MaxBodySize)

	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.icon_file", d.Window.IconFile)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.cell_width", d.Window.CellW)
	v.SetDefault("window.cell_height", d.Window.CellH)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)

	v.SetDefault("theme", d.Theme)
}

// Validate checks the configuration for values the viewer cannot work with
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Service.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("service.url %q is not an absolute URL", c.Service.URL))
	}
	if c.Service.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("service.timeout must be positive, got %v", c.Service.Timeout))
	}
	if c.Service.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("service.max_body_size must be positive, got %d", c.Service.MaxBodySize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}

func defaultLogDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, version.ShortName, "logs")
}
