package main

import (
	"io"
	"log/slog"

	"github.com/phsym/console-slog"
)

const timeFormat string = "2006-01-02 15:04:05.000"

// newLogger writes to the given stream so structured stdout stays
// clean in json mode.
func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := console.NewHandler(w, &console.HandlerOptions{
		Level:      level,
		TimeFormat: timeFormat,
	})
	return slog.New(handler)
}
