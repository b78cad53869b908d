package logging

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/socialintel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Output.Stdout)
	assert.False(t, cfg.Output.OTEL)
	assert.Equal(t, "socialintel", cfg.Fields["service"])
	assert.Contains(t, cfg.Redaction.Fields, "access_code")
	assert.Contains(t, cfg.Redaction.Fields, "cookie")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"no outputs", func(c *Config) { c.Output = OutputConfig{} }, "output"},
		{"zero tick", func(c *Config) { c.Sampling.Tick = 0 }, "tick"},
		{"bad pattern", func(c *Config) { c.Redaction.Patterns = []string{"("} }, "invalid redaction pattern"},
		{"empty field key", func(c *Config) { c.Fields[""] = "x" }, "key"},
		{"empty field value", func(c *Config) { c.Fields["env"] = "" }, "empty value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromSettings(t *testing.T) {
	cfg, err := FromSettings(config.LoggingConfig{Level: "trace", Format: "console"})
	require.NoError(t, err)
	assert.Equal(t, TraceLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)

	cfg, err = FromSettings(config.LoggingConfig{})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level)

	_, err = FromSettings(config.LoggingConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = FromSettings(config.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]zapcore.Level{
		"trace": TraceLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := LevelFromString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSampledCore_ErrorsNeverSampled(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	sampled := newSampledCore(core, SamplingConfig{
		Enabled:    true,
		Tick:       config.Duration(60_000_000_000),
		Initial:    1,
		Thereafter: 1000,
	})
	logger := &Logger{zap: zap.New(sampled), config: NewDefaultConfig()}

	for i := 0; i < 10; i++ {
		logger.Info(context.Background(), "repeated info")
		logger.Error(context.Background(), "repeated error")
	}

	assert.Equal(t, 1, observed.FilterMessage("repeated info").Len())
	assert.Equal(t, 10, observed.FilterMessage("repeated error").Len())
}

func TestSampledCore_Disabled(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	assert.Equal(t, core, newSampledCore(core, SamplingConfig{Enabled: false}))
}

func TestLevelFilterCore_With(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	filtered := &levelFilterCore{Core: core, maxLevel: zapcore.WarnLevel, hasMax: true}

	child := filtered.With(nil)
	assert.True(t, child.Enabled(zapcore.InfoLevel))
	assert.False(t, child.Enabled(zapcore.ErrorLevel))
	assert.Equal(t, 0, observed.Len())
}
