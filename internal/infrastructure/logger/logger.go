package logger

import (
	"io"
	"os"

	"github.com/gdugdh24/cofounder-backend/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger from the logging config. Unknown levels fall
// back to info.
func New(cfg *config.LoggingConfig) *logrus.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg *config.LoggingConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}
