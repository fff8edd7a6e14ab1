package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if !shouldSkipUptraceLog("http request", []any{"path", "/metrics"}) {
		t.Fatalf("expected metrics scrape log to be skipped")
	}
	if shouldSkipUptraceLog("http request", []any{"path", "/v1/careers/slot-1/rounds"}) {
		t.Fatalf("did not expect career request log to be skipped")
	}
	if shouldSkipUptraceLog("career intent applied", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"slot_id", "slot-1", "version", int64(4), "events"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "slot_id" || attrs[0].Value.AsString() != "slot-1" {
		t.Fatalf("unexpected slot_id attribute")
	}
	if attrs[1].Key != "version" || attrs[1].Value.AsInt64() != 4 {
		t.Fatalf("unexpected version attribute")
	}
	if attrs[2].Key != "events" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected events attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	cases := []struct {
		in   any
		kind otellog.Kind
	}{
		{in: uint64(42), kind: otellog.KindInt64},
		{in: uint64(1 << 63), kind: otellog.KindString},
		{in: errors.New("boom"), kind: otellog.KindString},
		{in: 1500 * time.Millisecond, kind: otellog.KindString},
		{in: []string{"a", "b"}, kind: otellog.KindSlice},
		{in: struct{ X int }{X: 1}, kind: otellog.KindString},
	}
	for _, tc := range cases {
		if got := toOTelLogValue(tc.in).Kind(); got != tc.kind {
			t.Fatalf("toOTelLogValue(%#v) kind=%s want=%s", tc.in, got, tc.kind)
		}
	}
}
