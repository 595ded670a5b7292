// Package logging provides tests for console logger construction.
package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"debug", log.DebugLevel, false},
		{"INFO", log.InfoLevel, false},
		{" warn ", log.WarnLevel, false},
		{"warning", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"loud", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error: got %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Formatter
		wantErr bool
	}{
		{"text", log.TextFormatter, false},
		{"", log.TextFormatter, false},
		{"JSON", log.JSONFormatter, false},
		{"logfmt", log.LogfmtFormatter, false},
		{"xml", log.TextFormatter, true},
	}

	for _, tt := range tests {
		got, err := ParseFormatter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormatter(%q) error: got %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsFrom(t *testing.T) {
	opts, err := OptionsFrom(Settings{Level: "debug", Format: "json", Timestamps: true})
	if err != nil {
		t.Fatalf("OptionsFrom failed: %v", err)
	}
	if opts.Level != log.DebugLevel {
		t.Errorf("Level: got %v, want debug", opts.Level)
	}
	if opts.Formatter != log.JSONFormatter {
		t.Errorf("Formatter: got %v, want json", opts.Formatter)
	}
	if !opts.ReportTimestamp {
		t.Errorf("ReportTimestamp: got false, want true")
	}
	if opts.Prefix != DefaultPrefix {
		t.Errorf("Prefix: got %q, want %q", opts.Prefix, DefaultPrefix)
	}

	if _, err := OptionsFrom(Settings{Level: "nope"}); err == nil {
		t.Errorf("OptionsFrom: expected error for bad level")
	}
	if _, err := OptionsFrom(Settings{Format: "nope"}); err == nil {
		t.Errorf("OptionsFrom: expected error for bad format")
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, DefaultOptions())

	logger.Info("hidden")
	logger.Warn("task rejected", "error", "priority must be an integer between 1 and 5")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "task rejected") {
		t.Errorf("warn message missing: %q", out)
	}
	if !strings.Contains(out, DefaultPrefix) {
		t.Errorf("prefix missing: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = log.DebugLevel
	opts.Formatter = log.JSONFormatter
	logger := New(&buf, opts)

	logger.Debug("task added", "priority", 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "task added" {
		t.Errorf("msg: got %v, want task added", entry["msg"])
	}
	if entry["priority"] != float64(2) {
		t.Errorf("priority: got %v, want 2", entry["priority"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
}
