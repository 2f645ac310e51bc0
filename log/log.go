// Package log is seaplay's logging facade over logrus.
//
// Nothing is emitted until Setup enables file logging; until then every call is a no-op,
// so the terminal control panel never gets interleaved with log lines.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/seaplay/filesystem"
	"github.com/anisan-cli/seaplay/key"
	"github.com/anisan-cli/seaplay/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is an alias so callers do not import logrus directly.
type Fields = logrus.Fields

var (
	enabled bool
	logger  = logrus.New()
	discard = newDiscard()
)

func newDiscard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// Setup opens today's log file under where.Logs and configures format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	configure(f, viper.GetBool(key.LogsJson), viper.GetString(key.LogsLevel))
	return nil
}

// SetOutput enables logging to w, bypassing the config. Intended for tests.
func SetOutput(w io.Writer) {
	enabled = true
	configure(w, false, "trace")
}

func configure(w io.Writer, asJSON bool, level string) {
	logger.SetOutput(w)

	if asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// WithFields returns a structured entry. When logging is disabled the entry discards everything.
func WithFields(fields Fields) *logrus.Entry {
	if !enabled {
		return discard
	}
	return logger.WithFields(fields)
}

func Error(args ...interface{}) {
	if enabled {
		logger.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled {
		logger.Errorf(format, args...)
	}
}

func Warn(args ...interface{}) {
	if enabled {
		logger.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled {
		logger.Warnf(format, args...)
	}
}

func Info(args ...interface{}) {
	if enabled {
		logger.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled {
		logger.Infof(format, args...)
	}
}

func Debug(args ...interface{}) {
	if enabled {
		logger.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if enabled {
		logger.Debugf(format, args...)
	}
}

func Tracef(format string, args ...interface{}) {
	if enabled {
		logger.Tracef(format, args...)
	}
}
