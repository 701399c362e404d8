package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapFields_TypedConstructors(t *testing.T) {
	fields := toZapFields([]Field{
		String("s", "v"),
		Int("i", 7),
		Int64("i64", 9),
		Float64("f", 1.5),
		Bool("b", true),
		Duration("d", time.Second),
		Err(errors.New("boom")),
		Any("a", struct{}{}),
	})
	require.Len(t, fields, 8)
	assert.Equal(t, "s", fields[0].Key)
	assert.Equal(t, "error", fields[6].Key)
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestLogger_WithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	child := log.With(String("listing_id", "lst_1")).Named("recalc")
	child.Info("profile recomputed", Int("score", 82))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profile recomputed", entries[0].Message)
	assert.Equal(t, "recalc", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "lst_1", fields["listing_id"])
	assert.EqualValues(t, 82, fields["score"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("whatever"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestNewLogger_Defaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestSetLevel_AppliesAtRuntime(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := NewLogger(LogConfig{Level: "error", OutputPaths: []string{out}})
	require.NoError(t, err)

	log.Info("before")
	require.True(t, SetLevel(log, "info"))
	log.Info("after")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before")
	assert.Contains(t, string(data), "after")
}

func TestSetLevel_SharedAcrossChildren(t *testing.T) {
	out := filepath.Join(t.TempDir(), "app.log")
	log, err := NewLogger(LogConfig{Level: "error", OutputPaths: []string{out}})
	require.NoError(t, err)
	child := log.Named("recalc").With(String("k", "v"))

	require.True(t, SetLevel(log, "debug"))
	child.Debug("child message")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "child message")
}

func TestSetLevel_Unsupported(t *testing.T) {
	assert.False(t, SetLevel(NewNopLogger(), "debug"))

	core, _ := observer.New(zapcore.InfoLevel)
	assert.False(t, SetLevel(NewLoggerFromCore(core), "debug"))
}

func TestNopLogger_DoesNothing(t *testing.T) {
	log := NewNopLogger()
	log.Info("ignored")
	assert.Equal(t, log, log.With(String("k", "v")))
	assert.Equal(t, log, log.Named("x"))
}
