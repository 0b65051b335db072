package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Info("registered",
		String("name", "app:type=Admin"),
		Int("count", 2),
		Bool("ready", true),
		Err(errors.New("boom")),
	)

	out := buf.String()
	for _, want := range []string{`"name":"app:type=Admin"`, `"count":2`, `"ready":true`, `"error":"boom"`, `"message":"registered"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerologLevel(LevelWarn)))

	z.Debug("hidden")
	z.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %s", buf.String())
	}

	z.With(String("component", "admin")).Warn("shown")
	if !strings.Contains(buf.String(), `"component":"admin"`) {
		t.Errorf("With() fields missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"", LevelInfo, false},
		{"WARNING", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

type recordingLogger struct {
	NoopLogger
	fields []Field
}

func (r *recordingLogger) Info(msg string, fields ...Field) { r.fields = fields }

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))
	With(z, String("context", "app")).Info("started")
	if !strings.Contains(buf.String(), `"context":"app"`) {
		t.Errorf("zerolog With() fields missing: %s", buf.String())
	}

	rec := &recordingLogger{}
	With(rec, String("context", "app")).Info("started", Int("n", 1))
	if len(rec.fields) != 2 || rec.fields[0].Key != "context" || rec.fields[1].Key != "n" {
		t.Errorf("fields = %+v, want context then n", rec.fields)
	}

	if _, ok := With(NewNoopLogger(), String("k", "v")).(*NoopLogger); !ok {
		t.Error("With() on a noop logger should stay noop")
	}
}
