package obs

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets the global zerolog logger. dev gets the console writer, anything else JSON.
func InitLogger(serviceName, env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	var l zerolog.Logger
	if env == "dev" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		l = zerolog.New(os.Stderr)
	}
	l = l.With().Timestamp().Str("svc", serviceName).Logger()
	log.Logger = l
	return l
}
