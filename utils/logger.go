package utils

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger menyiapkan logger default (text, level info) sebelum config dibaca.
func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	InfoLogger.SetOutput(os.Stdout)
	ErrorLogger.SetOutput(os.Stderr)

	_ = ConfigureLogger("info", "text")
}

// ConfigureLogger applies LOG_LEVEL and LOG_FORMAT to both loggers.
// ErrorLogger never goes below warn, so it keeps carrying only failures.
func ConfigureLogger(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter logrus.Formatter
	switch format {
	case "", "text":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	case "json":
		formatter = &logrus.JSONFormatter{}
	default:
		return fmt.Errorf("invalid log format %q: want text or json", format)
	}

	InfoLogger.SetFormatter(formatter)
	ErrorLogger.SetFormatter(formatter)

	InfoLogger.SetLevel(lvl)
	errLvl := logrus.WarnLevel
	if lvl < errLvl {
		errLvl = lvl
	}
	ErrorLogger.SetLevel(errLvl)
	return nil
}
