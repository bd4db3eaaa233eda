// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a text logger on dst. level is debug|info|warn|error
// (empty = info); quiet raises the level to error.
func NewLogger(dst io.Writer, level string, quiet bool) (*slog.Logger, error) {
	var lvl slog.Level
	if s := strings.TrimSpace(level); s != "" {
		if err := lvl.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q", level)
		}
	}
	if quiet && lvl < slog.LevelError {
		lvl = slog.LevelError
	}
	h := slog.NewTextHandler(dst, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// CLI output: no timestamps.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h), nil
}
