package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter("tables", &buf).WithRequestID("req-1")

	lg.Error("claim_failed", errors.New("boom"), map[string]any{"table_id": 3})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	for k, want := range map[string]any{
		"level":      "ERROR",
		"service":    "tables",
		"action":     "claim_failed",
		"message":    "claim_failed",
		"request_id": "req-1",
		"table_id":   float64(3),
	} {
		if entry[k] != want {
			t.Errorf("%s: expected %v, got %v", k, want, entry[k])
		}
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp missing")
	}
	e, ok := entry["error"].(map[string]any)
	if !ok || e["msg"] != "boom" {
		t.Errorf("unexpected error field %v", entry["error"])
	}
}

func TestLogger_Named(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("bootstrap", &buf).Named("shift").Info("shift_opened", nil)
	if !strings.Contains(buf.String(), `"service":"shift"`) {
		t.Errorf("expected renamed service, got %s", buf.String())
	}
}
