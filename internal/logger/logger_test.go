package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInit_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})

	Debug("hidden")
	Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be suppressed at default level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message should be emitted at default level")
	}
}

func TestInit_Debug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Debug: true, Output: &buf})

	Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message should be emitted in debug mode")
	}
	if !IsDebug() {
		t.Error("IsDebug() should report true in debug mode")
	}
}

func TestInit_Quiet(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Quiet: true, Output: &buf})

	Info("hidden")
	Warn("hidden too")
	Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info and warn should be suppressed in quiet mode")
	}
	if !strings.Contains(out, "shown") {
		t.Error("error should still be emitted in quiet mode")
	}
}

func TestInit_QuietOverridesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Debug: true, Quiet: true, Output: &buf})

	Info("hidden")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("quiet should win when both debug and quiet are set")
	}
	if IsDebug() {
		t.Error("IsDebug() should report false when quiet wins")
	}
}

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSON: true, Output: &buf})

	Info("structured", "field", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["msg"] != "structured" {
		t.Errorf("expected msg %q, got %v", "structured", entry["msg"])
	}
	if entry["field"] != "value" {
		t.Errorf("expected field %q, got %v", "value", entry["field"])
	}
}

func TestWith_CarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSON: true, Output: &buf})

	l := With("component", "pipeline")
	l.Info("tagged")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["component"] != "pipeline" {
		t.Errorf("expected component attribute, got %v", entry["component"])
	}
}
