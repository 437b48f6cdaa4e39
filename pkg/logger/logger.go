// Package logger configures the logrus logger shared by the commands.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w (stderr when nil) at the given level.
func New(level string, w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return log
}

// ParseLevel maps debug/info/warn/error to a logrus level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// UserFields identifies a user in log entries without its credentials.
func UserFields(u *data.User) logrus.Fields {
	if u == nil {
		return logrus.Fields{"user": nil}
	}
	return logrus.Fields{
		"user":      u.Username,
		"has_token": u.Token != "",
	}
}
