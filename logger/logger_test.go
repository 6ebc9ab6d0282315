package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// withObserver swaps the global logger for an in-memory one for the duration of a test.
func withObserver(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	prev := Logger
	Logger = zap.New(core).Sugar()
	t.Cleanup(func() { Logger = prev })
	return logs
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	prev := Logger
	defer func() { Logger = prev }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.True(t, Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
			assert.False(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestInitializeWithVerbosity(t *testing.T) {
	prev := Logger
	defer func() { Logger = prev }()

	require.NoError(t, InitializeWithVerbosity(false, VerbosityUser))
	assert.False(t, Logger.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, InitializeWithVerbosity(false, VerbosityDebug))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestInitialize_ThemeFromEnv(t *testing.T) {
	prev := Logger
	defer func() {
		Logger = prev
		SetTheme("everforest")
	}()

	t.Setenv("TSCR_LOG_THEME", "gruvbox")
	require.NoError(t, Initialize(false))
	assert.Equal(t, "gruvbox", Theme())
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}

	assert.Equal(t, "Info (-v)", LevelName(VerbosityInfo))
	assert.Equal(t, "Trace (-vvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-2))
	assert.True(t, ShouldLogTrace(VerbosityTrace))
	assert.False(t, ShouldLogTrace(VerbosityDebug))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(VerbosityUser, OutputResults))
	assert.True(t, ShouldOutput(VerbosityUser, OutputErrors))
	assert.False(t, ShouldOutput(VerbosityUser, OutputProgress))
	assert.True(t, ShouldOutput(VerbosityInfo, OutputProgress))
	assert.False(t, ShouldOutput(VerbosityInfo, OutputTiming))
	assert.True(t, ShouldOutput(VerbosityTrace, OutputTreeDump))
	assert.False(t, ShouldOutput(VerbosityDebug, OutputCategory(99)))

	assert.Equal(t, "tree-dump", CategoryName(OutputTreeDump))
	assert.Equal(t, "unknown", CategoryName(OutputCategory(99)))
}

func TestCleanup(t *testing.T) {
	prev := Logger
	defer func() { Logger = prev }()

	Logger = nil
	assert.NotPanics(t, Cleanup)

	Logger = zap.NewNop().Sugar()
	assert.NotPanics(t, Cleanup)
	assert.NotNil(t, Logger)
}

func TestLoggingFunctions(t *testing.T) {
	logs := withObserver(t, zapcore.DebugLevel)

	Debugw("debug", FieldNodeKind, "Block")
	Infow("info", FieldFile, "a.ts")
	Warnw("warn")
	Errorw("error", FieldError, "boom")

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "a.ts", entries[1].ContextMap()[FieldFile])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()[FieldError])
}

func TestComponentLogger(t *testing.T) {
	logs := withObserver(t, zapcore.InfoLevel)

	l := ChildLogger(ComponentLogger("watch"), FieldFile, "a.ts")
	l.Infow("regenerated", FieldBytes, 10)

	entries := logs.FilterMessage("regenerated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "watch", entries[0].LoggerName)
	assert.Equal(t, "a.ts", entries[0].ContextMap()[FieldFile])
	assert.EqualValues(t, 10, entries[0].ContextMap()[FieldBytes])
}
