package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/gitrun/internal/config"
	"github.com/mrz1836/gitrun/internal/constants"
	"github.com/mrz1836/gitrun/internal/logging"
)

var (
	logFileWriter   io.WriteCloser //nolint:gochecknoglobals // Closed on shutdown
	logFileWriterMu sync.Mutex     //nolint:gochecknoglobals // Protects logFileWriter

	// zerologGlobalMu protects writes to the zerolog global logger.
	zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global
)

// InitLogger creates the CLI logger.
//
// Log levels are set as follows:
//   - verbose=true: Debug level
//   - quiet=true: Warn level
//   - default: Info level
//
// Console output is human-readable on a TTY without NO_COLOR and JSON
// otherwise. With fileEnabled the logger also writes JSON to
// ~/.gitrun/logs/gitrun.log; if that file cannot be opened the logger falls
// back to console-only output.
func InitLogger(verbose, quiet, fileEnabled bool) zerolog.Logger {
	var writer io.Writer = selectOutput()

	if fileEnabled {
		if fw, err := createLogFileWriter(); err == nil {
			logFileWriterMu.Lock()
			if logFileWriter != nil {
				_ = logFileWriter.Close()
			}
			logFileWriter = fw
			logFileWriterMu.Unlock()
			writer = zerolog.MultiLevelWriter(writer, fw)
		}
	}

	return InitLoggerWithWriter(verbose, quiet, writer)
}

// InitLoggerWithWriter creates a logger writing to w. Tests use it to
// capture output without touching the log file.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).
		Level(selectLevel(verbose, quiet)).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger points the zerolog/log package logger at the CLI logger.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// CloseLogFile closes the log file writer if it was opened.
func CloseLogFile() {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput returns a console writer for an interactive stderr and raw
// JSON otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && HasColorSupport() {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// filteringWriteCloser redacts sensitive data before it reaches the
// underlying file.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

func (fwc *filteringWriteCloser) Write(p []byte) (int, error) {
	return fwc.filter.Write(p)
}

func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter opens the rotating CLI log file.
func createLogFileWriter() (io.WriteCloser, error) {
	logPath, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// LogFilePath returns the path to the CLI log file.
func LogFilePath() (string, error) {
	dir, err := config.LogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CLILogFileName), nil
}
