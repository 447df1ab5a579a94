package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	Logger  zerolog.Logger
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// Init initializes the logging system with zerolog.
// Every run is stamped with a fresh run id so concurrent invocations
// interleave legibly in the shared log file.
func Init() error {
	logDir := filepath.Join(os.Getenv("HOME"), ".local", "state", "menucli")
	os.MkdirAll(logDir, 0755)

	logPath := filepath.Join(logDir, "menucli.log")
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	// Set global level to Info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Configure field names
	zerolog.MessageFieldName = "msg"

	Logger = zerolog.New(logFile).
		With().Str("run", uuid.New().String()).Logger().
		Hook(timestampHook{})

	return nil
}

// SetDebug lowers the global level so Debug events reach the log file.
func SetDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
	}
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
