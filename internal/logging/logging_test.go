package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "json", &buf)
	log.Debug().Msg("hidden")
	log.Info().Str("vowel", "ü").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["message"] != "shown" || entry["vowel"] != "ü" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", "plain", &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("careful")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "careful") {
		t.Fatalf("unexpected output: %q", out)
	}
}
