package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("banner-ai", &Config{Encoding: "json", Level: "debug"}, &buf)
	require.NoError(t, err)

	ctx := WithRequestID(context.Background(), "req-1")
	log.DebugContext(ctx, "hello", "client_id", "1.2.3.4")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "banner-ai", record["app"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.Equal(t, "1.2.3.4", record["client_id"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("banner-ai", &Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("skipped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewWithWriter_InvalidConfig(t *testing.T) {
	_, err := NewWithWriter("x", &Config{Level: "verbose"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewWithWriter("x", &Config{Encoding: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRequestID_Empty(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
