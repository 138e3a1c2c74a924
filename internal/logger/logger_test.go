// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
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

// TestNewLoggerWithWriter_Fields verifies role, timestamp and caller fields.
func TestNewLoggerWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("test-role", &buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLoggerWithWriter_Fields")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	assert.Equal(t, zerolog.InfoLevel, SetLevel("info"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	assert.Equal(t, zerolog.DebugLevel, SetLevel("chatty"))
	assert.Equal(t, zerolog.DebugLevel, SetLevel(""))
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger_InheritsFields verifies that the child logger is a
// distinct instance that inherits the parent's fields.
func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithWriter("inherited-role", &buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Logger = child.With().Str("trace_id", "abc").Logger()
	child.Info().Msg("child message")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "inherited-role", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])
}

// TestFromContext_NotNil verifies that FromContext never returns nil, even
// when no logger has been explicitly attached to the context.
func TestFromContext_NotNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

// TestWithContext_RoundTrip verifies that a logger attached with WithContext
// is returned by FromContext and FromRequest.
func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter("ctx", &buf)
	l.Logger = l.With().Str("ctx-key", "ctx-value").Logger()

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from context")
	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}
