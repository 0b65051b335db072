package cliconfig

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/bft-labs/appadmin/pkg/log"
)

// NewLogger returns the CLI logger writing human-readable lines to w.
// Unknown levels fall back to info. Colors follow the current ANSI mode, so
// call it after ansi.SetMode.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, _ := log.ParseLevel(level)
	return log.NewZerologAdapter(w, lvl).Logger()
}
