package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleTraceparent = "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01"

func TestTraceFields(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		project     string
		wantFields  int
		wantSampled int64
	}{
		{"sampled", sampleTraceparent, "demo", 3, 1},
		{"not sampled", "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-00", "demo", 3, 0},
		{"malformed", "trace/span;o=1", "demo", 0, 0},
		{"empty header", "", "demo", 0, 0},
		{"no project", sampleTraceparent, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := traceFields(tt.header, tt.project)
			if len(fields) != tt.wantFields {
				t.Fatalf("expected %d fields, got %d", tt.wantFields, len(fields))
			}
			if tt.wantFields == 0 {
				return
			}
			if fields[0].String != "projects/demo/traces/3d23d071b5bfd6579171efce907685cb" {
				t.Fatalf("unexpected trace resource: %s", fields[0].String)
			}
			if fields[1].String != "08f067aa0ba902b7" {
				t.Fatalf("unexpected span id: %s", fields[1].String)
			}
			if fields[2].Type != zapcore.BoolType || fields[2].Integer != tt.wantSampled {
				t.Fatalf("unexpected sampled field: %+v", fields[2])
			}
		})
	}
}

func TestLoggerWithTraceAddsRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	loggerWithTrace(zap.New(core), "", "demo", "req-123").Info("hello")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["requestId"] != "req-123" {
		t.Fatalf("expected requestId field, got %+v", fields)
	}
}

func TestLoggerWithTraceNilBase(t *testing.T) {
	if l := loggerWithTrace(nil, "", "", ""); l == nil {
		t.Fatal("expected a no-op logger for nil base")
	}
}

func TestSetProjectID(t *testing.T) {
	SetProjectID("demo")
	defer SetProjectID("")
	if got := currentProjectID(); got != "demo" {
		t.Fatalf("expected demo, got %q", got)
	}
}
