package config

import (
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	Window  WindowConfig  `mapstructure:"window"`
	Logging LoggingConfig `mapstructure:"logging"`
	Theme   string        `mapstructure:"theme"`
}

// ServiceConfig describes the inference service the viewer talks to
type ServiceConfig struct {
	URL         string        `mapstructure:"url"`
	TagsPath    string        `mapstructure:"tags_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxBodySize int64         `mapstructure:"max_body_size"`
}

// WindowConfig holds the viewer chrome, sizes are logical units
type WindowConfig struct {
	Title    string `mapstructure:"title"`
	IconFile string `mapstructure:"icon_file"`
	Width    int    `mapstructure:"width"`
	Height   int    `mapstructure:"height"`
	CellW    int    `mapstructure:"cell_width"`
	CellH    int    `mapstructure:"cell_height"`
}

// Columns converts the logical width to terminal cells
func (w WindowConfig) Columns() int {
	if w.CellW <= 0 {
		return w.Width
	}
	return w.Width / w.CellW
}

// Rows converts the logical height to terminal cells
func (w WindowConfig) Rows() int {
	if w.CellH <= 0 {
		return w.Height
	}
	return w.Height / w.CellH
}

// LoggingConfig holds the log file setup
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}
