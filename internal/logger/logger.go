package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const fileName = "focusflow.log"

// Config holds logger configuration.
type Config struct {
	Debug bool
	// Dir is where the rotating log file lives.
	Dir string
	// Stderr overrides the console writer used in debug mode.
	Stderr io.Writer
}

// Logger wraps the structured logger and its rotating file.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger that writes to <Dir>/focusflow.log. Debug mode lowers
// the level to debug and mirrors output to stderr.
func New(cfg Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, fileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		console := cfg.Stderr
		if console == nil {
			console = os.Stderr
		}
		writer = io.MultiWriter(console, fileWriter)
	}

	return &Logger{
		Logger: log.NewWithOptions(writer, log.Options{
			ReportCaller:    cfg.Debug,
			ReportTimestamp: true,
			Level:           level,
			Prefix:          "focusflow",
		}),
		file: fileWriter,
	}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// Path returns the log file location, empty for a discarding logger.
func (logger *Logger) Path() string {
	if logger.file == nil {
		return ""
	}
	return logger.file.Filename
}

// Component returns a child logger tagged with a component name.
func (logger *Logger) Component(name string) *log.Logger {
	return logger.With("component", name)
}

// Close flushes and closes the log file.
func (logger *Logger) Close() error {
	if logger.file == nil {
		return nil
	}
	return logger.file.Close()
}

