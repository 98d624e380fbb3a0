package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/docker/go-units"
)

const (
	zeroLatency = "0ms"
	never       = "never"
)

// Latency renders a request latency for the status line
func Latency(d time.Duration) string {
	ms := d.Milliseconds()
	switch {
	case ms <= 0:
		if d > 0 {
			return "<1ms"
		}
		return zeroLatency
	case ms >= 1000:
		return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
	default:
		return strconv.FormatInt(ms, 10) + "ms"
	}
}

// Duration formats duration in a readable way
func Duration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// Size renders a byte count the way Ollama's own CLI does (decimal units)
func Size(bytes int64) string {
	if bytes < 0 {
		return ""
	}
	return units.HumanSize(float64(bytes))
}

// Age renders how long ago t was, relative to now
func Age(t, now time.Time) string {
	if t.IsZero() {
		return never
	}
	if t.After(now) {
		return "just now"
	}
	return units.HumanDuration(now.Sub(t)) + " ago"
}
