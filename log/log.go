// Package log is a thin facade over logrus that writes to a dated file in where.Logs().
//
// Until Setup enables it, every call is discarded.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kitsufix/kitsufix/filesystem"
	"github.com/kitsufix/kitsufix/key"
	"github.com/kitsufix/kitsufix/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var logger = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup opens today's log file when logs.write is enabled and applies format and level.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = newDiscard()
		return nil
	}

	path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	return SetupWriter(f)
}

// SetupWriter enables logging into w using the configured format and level.
func SetupWriter(w io.Writer) error {
	l := logrus.New()
	l.SetOutput(w)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	logger = l
	return nil
}

// Fields is an alias so callers don't need to import logrus.
type Fields = logrus.Fields

// WithFields starts a structured entry.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

// WithError starts an entry carrying err.
func WithError(err error) *logrus.Entry {
	return logger.WithError(err)
}

func Error(args ...any) { logger.Error(args...) }
