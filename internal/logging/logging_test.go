package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/LISSConsulting/flapper/internal/config"
)

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("level = %s, want warn", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.WithField("interface", "en0").Warn("ifconfig exited with status 1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "interface=en0") || !strings.Contains(out, "level=warning") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flap.log")
	var console bytes.Buffer

	logger, closer, err := New(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1}, &console)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("written to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing entry: %s", data)
	}
	if console.Len() != 0 {
		t.Errorf("console should be empty when logging to file, got: %s", console.String())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for invalid level")
	}
}
