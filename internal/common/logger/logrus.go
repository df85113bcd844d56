package logger

import (
	"io"

	"github.com/rizkirmdhn/docfetch/internal/common/config"
	"github.com/sirupsen/logrus"
)

func New(cfg *config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()

	log.SetOutput(out)
	log.SetLevel(logrus.Level(cfg.App.LogLevel))
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	return log
}
