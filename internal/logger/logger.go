package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thushan/ollaview/internal/util"
	"github.com/thushan/ollaview/theme"
)

type Config struct {
	Writer         io.Writer // terminal destination, stderr when nil
	Level          string
	LogDir         string
	Theme          string
	MaxSize        int // megabytes
	MaxBackups     int
	MaxAge         int // days
	FileOutput     bool
	TerminalOutput bool
}

const (
	DefaultLogOutputName  = "ollaview.log"
	DefaultDetailedCookie = "detailed"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	fileTimestampFormat = "2006-01-02 15:04:05"
)

// New builds the slog logger. The full screen viewer owns the terminal, so
// callers switch TerminalOutput off while it runs and rely on the file.
func New(cfg *Config) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)

	var screen, file slog.Handler
	cleanup := func() {}

	if cfg.TerminalOutput {
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		screen = newTerminalHandler(w, level, theme.GetTheme(cfg.Theme))
	}

	if cfg.FileOutput {
		h, closeFile, err := newFileHandler(cfg, level)
		if err != nil {
			return nil, nil, err
		}
		file, cleanup = h, closeFile
	}

	switch {
	case screen != nil && file != nil:
		return slog.New(&splitHandler{screen: screen, file: file}), cleanup, nil
	case screen != nil:
		return slog.New(screen), cleanup, nil
	case file != nil:
		return slog.New(file), cleanup, nil
	default:
		return slog.New(slog.DiscardHandler), cleanup, nil
	}
}

// newTerminalHandler is used for the non-interactive run and for anything
// logged before or after the viewer. Refresh outcomes carry endpoint and
// kind attributes, those get the theme colours.
func newTerminalHandler(w io.Writer, level slog.Level, appTheme *theme.Theme) slog.Handler {
	if !util.ShouldUseColors() {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: plainAttr,
		})
	}

	plogger := pterm.DefaultLogger.
		WithLevel(ptermLevel(level)).
		WithWriter(w).
		WithFormatter(pterm.LogFormatterColorful).
		WithKeyStyles(map[string]pterm.Style{
			"msg":      *appTheme.Info,
			"time":     *appTheme.Muted,
			"endpoint": {appTheme.Endpoint},
			"kind":     *appTheme.Warn,
		})
	return pterm.NewSlogHandler(plogger)
}

// newFileHandler writes JSON lines into a rotating ollaview.log
func newFileHandler(cfg *Config, level slog.Level) (slog.Handler, func(), error) {
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory %s: %w", cfg.LogDir, err)
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, DefaultLogOutputName),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}

	h := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: plainAttr,
	})
	return h, func() { _ = rotator.Close() }, nil
}

// plainAttr keeps JSON output readable: a short timestamp, styled messages
// without escape codes and arbitrary values (errors mostly) as text
func plainAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("timestamp", a.Value.Time().Format(fileTimestampFormat))
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.ContainsRune(s, '\x1b') {
			return slog.String(a.Key, stripAnsiCodes(s))
		}
	case slog.KindAny:
		return slog.String(a.Key, fmt.Sprintf("%v", a.Value.Any()))
	}
	return a
}

// splitHandler sends records to both the terminal and the file. Records
// logged with the detailed cookie, such as the raw cause of a failed
// refresh, stay out of the terminal.
type splitHandler struct {
	screen slog.Handler
	file   slog.Handler
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.screen.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, record slog.Record) error {
	if !isDetailed(ctx) && h.screen.Enabled(ctx, record.Level) {
		if err := h.screen.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	if h.file.Enabled(ctx, record.Level) {
		return h.file.Handle(ctx, record)
	}
	return nil
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{screen: h.screen.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{screen: h.screen.WithGroup(name), file: h.file.WithGroup(name)}
}

func isDetailed(ctx context.Context) bool {
	d, ok := ctx.Value(DefaultDetailedCookie).(bool)
	return ok && d
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ptermLevel(level slog.Level) pterm.LogLevel {
	switch {
	case level <= slog.LevelDebug:
		return pterm.LogLevelDebug
	case level >= slog.LevelError:
		return pterm.LogLevelError
	case level >= slog.LevelWarn:
		return pterm.LogLevelWarn
	default:
		return pterm.LogLevelInfo
	}
}
