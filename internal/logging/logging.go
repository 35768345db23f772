package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/adamscao/certauth/internal/config"
)

// New builds a logger from the logging configuration section. Unknown
// levels fall back to info; any format other than "json" selects text.
func New(cfg config.LoggingConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
