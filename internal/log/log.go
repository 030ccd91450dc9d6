package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func Get() *zerolog.Logger {
	return &Logger
}

func Level(l zerolog.Level) {
	Logger = Logger.Level(l)
}

// SetLevel parses a level name such as "debug" or "warn".
func SetLevel(name string) error {
	l, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	Level(l)
	return nil
}

// Output redirects the logger, keeping its level.
func Output(w io.Writer) {
	Logger = zerolog.New(w).Level(Logger.GetLevel()).With().Timestamp().Logger()
}
