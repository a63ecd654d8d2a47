package config

import (
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Release mode logs JSON.
func NewLogger(cfg *Config) *log.Logger {
	l := log.New()
	l.SetOutput(os.Stdout)

	if cfg.GinMode == gin.ReleaseMode {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		l.WithField("log_level", cfg.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	l.SetLevel(level)

	return l
}
