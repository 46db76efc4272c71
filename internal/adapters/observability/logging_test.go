package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_ProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("prod", &buf)

	l.Debug().Msg("hidden")
	l.Info().Str("op", "list_places").Msg("visible")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "visible" || line["service"] != "hbnb-web" || line["op"] != "list_places" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewLogger_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("dev", &buf)
	l.Debug().Msg("debug line")
	if !bytes.Contains(buf.Bytes(), []byte("debug line")) {
		t.Fatalf("expected debug output in dev, got %q", buf.String())
	}
}
