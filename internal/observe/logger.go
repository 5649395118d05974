package observe

import (
	"io"
	"log/slog"
)

// NewLogger returns a text [slog.Logger] writing to w. Passing a
// [*slog.LevelVar] lets the caller change the level at runtime.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
