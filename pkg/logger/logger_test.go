package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Output: &buf})

	WithCtx(context.Background()).Info().Msg("base")
	assert.Contains(t, buf.String(), `"message":"base"`)

	buf.Reset()
	reqLog := L.With().Str("request_id", "abc").Logger()
	ctx := Inject(context.Background(), reqLog)
	WithCtx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}

func TestExtraWriterReceivesJSON(t *testing.T) {
	var out, extra bytes.Buffer
	Init(Options{Level: "debug", Pretty: true, Output: &out, Extra: &extra})

	L.Debug().Str("k", "v").Msg("hello")
	assert.Contains(t, extra.String(), `"k":"v"`)
	assert.NotContains(t, out.String(), `"k":"v"`, "console output is not JSON")
}

func TestToDocument(t *testing.T) {
	line := []byte(`{"level":"error","time":"2026-01-02T03:04:05Z","request_id":"r1","status":500,"message":"boom"}`)

	doc, ok := toDocument(line)
	require.True(t, ok)
	assert.Equal(t, "error", doc.Level)
	assert.Equal(t, "boom", doc.Msg)
	assert.Equal(t, "r1", doc.RequestID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), doc.Time)
	assert.Equal(t, float64(500), doc.Attrs["status"])

	_, ok = toDocument([]byte("not json"))
	assert.False(t, ok)
}
