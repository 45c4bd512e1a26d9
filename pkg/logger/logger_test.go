package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	pkgerrors "github.com/angelmondragon/stockdesk/pkg/errors"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithOperation(ctx, "Products")

	log.Error(ctx, "boom", errors.New("boom"))

	if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"req-123"`)) {
		t.Fatalf("expected request_id to be preserved; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"operation":"Products"`)) {
		t.Fatalf("expected operation field; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("expected stack trace on error; entry=%s", buf.String())
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, WarnStack: true})
	log.Warn(context.Background(), "warny")
	if !bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("expected stack when warn stack enabled; entry=%s", buf.String())
	}

	buf.Reset()
	quiet := New(Options{ServiceName: "test", Output: buf})
	quiet.Warn(context.Background(), "warny")
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("expected no stack when warn stack disabled; entry=%s", buf.String())
	}
}

func TestLoggerDebugFilteredByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})
	log.Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug entry to be dropped at info level; entry=%s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("invalid level should fallback to info, got %v", lvl)
	}
	if lvl := ParseLevel(" WARN "); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}

func TestLoggerStampsFixedFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "gateway", Output: buf, Format: FormatJSON, Fields: map[string]any{"instance": "node-a"}})
	log.Info(context.Background(), "started")

	if !bytes.Contains(buf.Bytes(), []byte(`"instance":"node-a"`)) {
		t.Fatalf("expected fixed field; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"service":"gateway"`)) {
		t.Fatalf("expected service field; entry=%s", buf.String())
	}
}

func TestLoggerRemoteErrorCarriesCodeWithoutStack(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, Format: FormatJSON})

	err := pkgerrors.New(pkgerrors.CodeTransport, "remote responded with status 503")
	log.Error(context.Background(), "remote.request_failed", err)

	if !bytes.Contains(buf.Bytes(), []byte(`"error_code":"TRANSPORT_ERROR"`)) {
		t.Fatalf("expected error code; entry=%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"retryable":true`)) {
		t.Fatalf("expected retryable flag; entry=%s", buf.String())
	}
	if bytes.Contains(buf.Bytes(), []byte(`"stack"`)) {
		t.Fatalf("expected no stack for a remote failure; entry=%s", buf.String())
	}
}

func TestLoggerConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, Format: "Console"})
	log.Info(context.Background(), "hello")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected console output; entry=%s", buf.String())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected message; entry=%s", buf.String())
	}
}

func TestWithOperationSkipsEmptyName(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, Format: FormatJSON})
	log.Info(log.WithOperation(context.Background(), ""), "plain")
	if bytes.Contains(buf.Bytes(), []byte(`"operation"`)) {
		t.Fatalf("expected no operation field; entry=%s", buf.String())
	}
}
