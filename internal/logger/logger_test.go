package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T, c Config, f func()) string {
	t.Helper()

	var buf bytes.Buffer
	c.Output = &buf
	Init(&c)
	t.Cleanup(func() { Init(&Config{Level: "info", Format: FormatText}) })

	f()
	return buf.String()
}

func TestLogger_TextFormat(t *testing.T) {
	out := capture(t, Config{Level: "debug", Format: FormatText, Component: "test"}, func() {
		Info("hello workmatch", "key", "value")
	})

	if !strings.Contains(out, "hello workmatch") {
		t.Errorf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("expected structured field, got: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	out := capture(t, Config{Level: "info", Format: FormatJSON, Component: "json_test"}, func() {
		Info("json log", "foo", "bar")
	})

	if !strings.Contains(out, `"msg":"json log"`) {
		t.Errorf("expected JSON message, got: %s", out)
	}
	if !strings.Contains(out, `"component":"json_test"`) {
		t.Errorf("expected component in JSON, got: %s", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	out := capture(t, Config{Level: "error", Format: FormatText}, func() {
		Info("should not appear")
		Error("should appear")
	})

	if strings.Contains(out, "should not appear") {
		t.Errorf("info log should not appear, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("error log should appear, got: %s", out)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	out := capture(t, Config{Level: "debug", Format: FormatText}, func() {
		With("peer_id", 7).Info("polling conversation")
	})

	if !strings.Contains(out, "peer_id=7") {
		t.Errorf("expected peer_id field, got: %s", out)
	}
}

func TestLogger_JSONFormatIgnoresCase(t *testing.T) {
	out := capture(t, Config{Level: "info", Format: Format("JSON")}, func() {
		Info("upper case format")
	})

	var line map[string]any
	if err := json.Unmarshal([]byte(out), &line); err != nil {
		t.Fatalf("expected a JSON line, got: %s", out)
	}
	ts, _ := line["time"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("expected RFC3339 time in JSON output, got %q", ts)
	}
}

func TestLogger_ReinitKeepsEarlierHandlerFormat(t *testing.T) {
	var text bytes.Buffer
	Init(&Config{Level: "info", Format: FormatText, Output: &text})
	earlier := L()

	var js bytes.Buffer
	capture(t, Config{Level: "info", Format: FormatJSON}, func() {
		Init(&Config{Level: "info", Format: FormatJSON, Output: &js})
		earlier.Info("from the text logger")
	})

	out := text.String()
	i := strings.Index(out, "time=")
	if i < 0 {
		t.Fatalf("expected a time field, got: %s", out)
	}
	stamp := strings.Trim(out[i+len("time="):i+len("time=")+len(time.DateTime)+1], `"`)
	if _, err := time.Parse(time.DateTime, stamp); err != nil {
		t.Errorf("expected %s time from the text logger, got: %s", time.DateTime, out)
	}
}
