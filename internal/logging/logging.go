package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup points the global zerolog logger at a rotating file inside logDir,
// plus a human readable console writer. Timestamps are rendered in loc.
// The returned closer flushes the file writer on shutdown.
func Setup(logDir string, loc *time.Location, console bool) (io.Closer, error) {

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "crconbot.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 50,
	}

	writers := []io.Writer{file}
	if console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }
	log.Logger = zerolog.New(io.MultiWriter(writers...)).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	return file, nil
}
