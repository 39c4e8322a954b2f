package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("merge queued", String("output", "/dst/20240813-09.mp4"), Int("sources", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Errorf("missing level label: %q", line)
	}
	if !strings.Contains(line, "merge queued") {
		t.Errorf("missing message: %q", line)
	}
	if !strings.Contains(line, "output=/dst/20240813-09.mp4") {
		t.Errorf("missing attr: %q", line)
	}
	if !strings.Contains(line, "sources=3") {
		t.Errorf("missing int attr: %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("expected single line, got %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("probe failed", String("detail", "no such file"))
	if !strings.Contains(buf.String(), `detail="no such file"`) {
		t.Fatalf("unquoted value: %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestConsoleHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.With(String("run", "abc")).WithGroup("job").Info("done", String("output", "x.mp4"))
	line := buf.String()
	if !strings.Contains(line, "run=abc") {
		t.Errorf("missing inherited attr: %q", line)
	}
	if !strings.Contains(line, "job.output=x.mp4") {
		t.Errorf("missing grouped attr: %q", line)
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Error("engine failed", String("output", "x.mp4"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if payload["level"] != "error" {
		t.Errorf("level = %v", payload["level"])
	}
	if payload["msg"] != "engine failed" {
		t.Errorf("msg = %v", payload["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled")
	}
}
