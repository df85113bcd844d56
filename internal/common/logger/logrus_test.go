package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rizkirmdhn/docfetch/internal/common/config"
	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{App: config.AppConfig{LogLevel: int(logrus.WarnLevel)}}

	log := New(cfg, &buf)

	if log.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected level warn, got %s", log.GetLevel())
	}

	log.Info("hidden")
	log.WithField("title", "Doc One").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `title="Doc One"`) {
		t.Errorf("Expected warn line with title field, got %q", out)
	}
}
