// Package logging builds the structured logger shared by both binaries.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-rendered zerolog.Logger tagged with the given
// component name (e.g. "dispatcher", "worker"), mirroring how the pack's
// load-balancer services (0xReLogic/Helios, cuemby/warren) scope their
// logger to the process it runs in.
func New(component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
