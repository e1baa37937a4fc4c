package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "share-server")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "share-server", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNew_Fields")
}

func TestNew_GlobalSettings(t *testing.T) {
	New(&bytes.Buffer{}, "x")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "parent")

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("trace_id", "t-1").Logger()

	parent.Info().Msg("parent")
	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, "trace_id")

	buf.Reset()
	child.Info().Msg("child")
	entry = decodeEntry(t, &buf)
	assert.Equal(t, "t-1", entry["trace_id"])
	assert.Equal(t, "parent", entry["role"])
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ctx-role")

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from ctx")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ctx-role", entry["role"])
}

func TestFromRequest_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "req-role")

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(l.WithContext(r.Context()))
	FromRequest(r).Info().Msg("from request")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "req-role", entry["role"])
}

func TestFromContext_NoLoggerNeverNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOr_PrefersContext(t *testing.T) {
	var ctxBuf, fallbackBuf bytes.Buffer
	ctx := New(&ctxBuf, "ctx-role").WithContext(context.Background())

	FromContextOr(ctx, New(&fallbackBuf, "fallback")).Info().Msg("hello")

	assert.Equal(t, "ctx-role", decodeEntry(t, &ctxBuf)["role"])
	assert.Zero(t, fallbackBuf.Len())
}

func TestFromContextOr_UsesFallback(t *testing.T) {
	var buf bytes.Buffer
	FromContextOr(context.Background(), New(&buf, "fallback")).Info().Msg("hello")

	assert.Equal(t, "fallback", decodeEntry(t, &buf)["role"])
}

func TestFromContextOr_NilFallbackNeverNil(t *testing.T) {
	assert.NotNil(t, FromContextOr(context.Background(), nil))
}
