package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel}, // Default
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("health query complete", Query("network_health"), Int("impaired_links", 2))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected INFO level, got %s", entry.Level)
	}
	if entry.Message != "health query complete" {
		t.Errorf("Unexpected message: %s", entry.Message)
	}
	if entry.Fields["query"] != "network_health" {
		t.Errorf("Missing query field: %+v", entry.Fields)
	}
}

func TestJSONLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("should appear")

	lines := strings.Count(buf.String(), "\n")
	if lines != 1 {
		t.Errorf("Expected 1 log line, got %d: %s", lines, buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("diagnostics"))

	child.Info("trace complete", ServiceID("postgresql_orders"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Fields["component"] != "diagnostics" {
		t.Errorf("Pre-set field lost: %+v", entry.Fields)
	}
	if entry.Fields["service_id"] != "postgresql_orders" {
		t.Errorf("Call field lost: %+v", entry.Fields)
	}
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("boom"))
	if f.Key != "error" || f.Value != "boom" {
		t.Errorf("Unexpected error field: %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Expected nil value for nil error, got %v", f.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic, must accept chaining.
	logger.With(Component("x")).Info("ignored")
}
