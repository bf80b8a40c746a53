package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("parse log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestFieldsAndService(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "portal")

	log.WithField("operation", "login").WithFields(map[string]any{"status": 200}).Info("upstream call succeeded")

	entry := lastLine(t, &buf)
	if entry["service"] != "portal" || entry["operation"] != "login" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["status"] != float64(200) || entry["message"] != "upstream call succeeded" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("level = %v", entry["level"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, "portal").WithError(errors.New("connection refused")).Error("upstream call failed")

	entry := lastLine(t, &buf)
	if entry["error"] != "connection refused" || entry["level"] != "error" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "portal")

	ctx := ContextWithRequestID(context.Background(), "req-123")
	log.WithContext(ctx).Info("handled")

	entry := lastLine(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Fatalf("entry = %v", entry)
	}

	buf.Reset()
	log.WithContext(context.Background()).Info("no id")
	entry = lastLine(t, &buf)
	if _, present := entry["request_id"]; present {
		t.Fatalf("entry = %v, request_id must be absent", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	levels := map[string]bool{
		"debug": true,
		"info":  false,
		"warn":  false,
	}
	for level, wantDebug := range levels {
		log := New(LoggingConfig{Level: level, Format: "json", Service: "portal"})
		if got := log.zl.GetLevel() <= 0; got != wantDebug {
			t.Fatalf("level %q: debug enabled = %v", level, got)
		}
	}
}
