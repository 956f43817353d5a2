// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Setup installs the global logger and returns it. Local runs get the
// console writer, everything else writes JSON lines to stdout.
func Setup(service string, local bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	var out io.Writer = os.Stdout
	if local {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stdout
			w.TimeFormat = time.RFC3339
		})
	}
	log.Logger = New(out, service)
	return log.Logger
}

func New(out io.Writer, service string) zerolog.Logger {
	return zerolog.New(out).With().
		Str("service", service).
		Timestamp().
		Logger()
}
