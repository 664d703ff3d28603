package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is usable before Init so packages under test can log.
var Logger = logrus.New()

// Init replaces Logger with one configured for the environment. Production
// logs are JSON; anything else gets the text formatter. When logDir is set,
// entries are also appended to a per-day file in it.
func Init(level string, appEnv string, logDir string) error {
	logger := logrus.New()

	if strings.EqualFold(appEnv, "production") {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	out, err := outputFor(logDir, time.Now())
	if err != nil {
		return err
	}
	logger.SetOutput(out)

	Logger = logger
	return nil
}

func outputFor(logDir string, day time.Time) (io.Writer, error) {
	if logDir == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filepath.Join(logDir, "carddemo_"+day.Format("2006-01-02")+".log")
	file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return io.MultiWriter(os.Stdout, file), nil
}

// AccessLog is the writer handed to the HTTP access log handler.
func AccessLog() io.Writer {
	return Logger.WriterLevel(logrus.InfoLevel)
}
