//go:build unit

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"parts-storefront/internal/config"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.LogConfig{Level: "info", Format: "console"}
		log := New(cfg, &buf)

		log.Info("sitemap rendered")

		output := buf.String()
		if !strings.Contains(output, "sitemap rendered") {
			t.Errorf("expected log output to contain 'sitemap rendered', but got '%s'", output)
		}
		if strings.Contains(output, "{") {
			t.Errorf("expected console format, but got json-like output: %s", output)
		}
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.LogConfig{Level: "error", Format: "json"}
		log := New(cfg, &buf)

		testErr := errors.New("backend unavailable")
		log.Error(testErr, "category fetch failed")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("failed to unmarshal log output as json: %v\noutput: %s", err, buf.String())
		}

		if logEntry["level"] != "error" {
			t.Errorf("expected log level 'error', got '%v'", logEntry["level"])
		}
		if logEntry["message"] != "category fetch failed" {
			t.Errorf("expected message 'category fetch failed', got '%v'", logEntry["message"])
		}
		if logEntry["error"] != "backend unavailable" {
			t.Errorf("expected error 'backend unavailable', got '%v'", logEntry["error"])
		}
	})

	t.Run("log level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := config.LogConfig{Level: "warn", Format: "console"}
		log := New(cfg, &buf)

		log.Info("this should be ignored")
		log.Debug("this should be ignored too")
		log.Warn("this should appear")

		output := buf.String()
		if strings.Contains(output, "ignored") {
			t.Error("info and debug logs should have been ignored")
		}
		if !strings.Contains(output, "this should appear") {
			t.Error("warn level log should have appeared")
		}
	})

	t.Run("with fields", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

		log.With(map[string]interface{}{"route": "/sitemap.xml"}).Info("served")

		var logEntry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("failed to unmarshal log output as json: %v", err)
		}
		if logEntry["route"] != "/sitemap.xml" {
			t.Errorf("expected route field, got %v", logEntry["route"])
		}
	})
}
