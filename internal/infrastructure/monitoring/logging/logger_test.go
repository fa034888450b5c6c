package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 0.5}, Float64("f", 0.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
	assert.Equal(t, Field{Key: "error", Value: "boom"}, Err(errors.New("boom")))
}

func TestZapLogger_EmitsFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("scored product",
		String("risk_level", "high"),
		Float64("overall_score", 42.5),
		Int("flagged", 3),
	)

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "scored product", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "high", fields["risk_level"])
	assert.Equal(t, 42.5, fields["overall_score"])
	assert.Equal(t, int64(3), fields["flagged"])
}

func TestZapLogger_WithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	child := log.With(String("component", "resolver")).Named("resolver")
	child.Warn("tier failed")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "resolver", entries[0].LoggerName)
	assert.Equal(t, "resolver", entries[0].ContextMap()["component"])
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	// Must be safe to call every method.
	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")
	assert.NotNil(t, log.With(String("k", "v")))
	assert.NotNil(t, log.Named("x"))
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, observed := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("hello")
	assert.Equal(t, 1, observed.Len())

	// SetDefault(nil) is a no-op.
	SetDefault(nil)
	assert.NotNil(t, Default())
}
