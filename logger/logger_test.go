package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHandleWritesToFile(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelInfo, false)
	l := slog.New(h)
	l.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "key=value") {
		t.Fatalf("log output = %q, want it to contain message and attrs", out)
	}
}

func TestEnabledRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelWarn, false)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled(Info) = true, want false when configured at Warn")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Enabled(Error) = false, want true when configured at Warn")
	}
}

func TestNilFileDoesNotPanic(t *testing.T) {
	h := NewHandler(nil, slog.LevelInfo, false)
	l := slog.New(h)
	l.Warn("warn with no file configured")
}

func TestWithAttrsPreservesDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, slog.LevelDebug, true)
	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "test")})
	hh, ok := h2.(*Handler)
	if !ok {
		t.Fatal("WithAttrs did not return a *Handler")
	}
	if !hh.debug {
		t.Error("WithAttrs lost the debug flag")
	}
}
