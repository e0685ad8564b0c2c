package config

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewLogger builds a logger writing to w with the configured format and
// level. An unknown level falls back to info.
func NewLogger(v *viper.Viper, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if v.GetBool(LogJSON) {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(v.GetString(LogLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
