package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}})
	assert.Error(t, err)
}

func TestNewHonoursLevel(t *testing.T) {
	logger, err := New(Config{Level: "warn", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestFromConfigFallsBack(t *testing.T) {
	logger := FromConfig("nonsense", false)
	require.NotNil(t, logger)

	dev := FromConfig("", true)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestComponentNamesLogger(t *testing.T) {
	named := Nop().Component(Renderer)
	assert.NotNil(t, named)
}

func TestNewWriterTargetsWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(Config{Level: "info"}, &buf)
	require.NoError(t, err)

	logger.Component(Registry).Info("Seeded", zap.Int("components", 25))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `"message":"Seeded"`)
	assert.Contains(t, out, `"logger":"registry"`)
	assert.Contains(t, out, `"components":25`)
	assert.NotContains(t, out, "hidden")

	_, err = NewWriter(Config{Level: "loud"}, &buf)
	assert.Error(t, err)
}
