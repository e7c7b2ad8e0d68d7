package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	dev := NewLogger(true, &bytes.Buffer{})
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	prod := NewLogger(false, &bytes.Buffer{})
	assert.False(t, prod.Core().Enabled(zap.InfoLevel))
	assert.True(t, prod.Core().Enabled(zap.WarnLevel))

	assert.NotNil(t, NewLogger(false, nil))
}

func TestNewLogger_WritesToGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false, &buf)

	logger.Info("hidden")
	logger.Error("backend down", zap.String("file", "a.ogg"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "backend down")
	assert.Contains(t, out, "a.ogg")
	// one record, no stack trace lines
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}
