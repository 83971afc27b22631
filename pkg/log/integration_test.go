package log

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
)

// logDetectionRun は 1 回の検出で出力されるログ行を順に書き出す
func logDetectionRun(l Logger, jobID string) {
	jl := l.With(JobIDKey, jobID)
	jl.Info("Target detection started",
		OperationKey, OperationDetect,
		SamplesKey, 300,
		FeaturesKey, 4,
	)
	jl.Debug("Column filtered as ID", PhaseKey, PhaseFilter, ColumnKey, "user_id")
	jl.Debug("Column filter finished", PhaseKey, PhaseFilter, FilteredKey, 1)
	jl.Debug("Column scored",
		PhaseKey, PhaseScoring,
		ColumnKey, "churn",
		ScoreKey, 0.78,
		ComponentsKey, map[string]float64{"A": 1, "P": 0.9},
	)
	jl.Warn("Predictability probe degraded",
		ColumnKey, "status",
		TaskKey, "classification",
		NoteKey, "single_class_target",
	)
	jl.Info("Target decision computed",
		PhaseKey, PhaseDecision,
		DecisionModeKey, "auto",
		ScoreKey, 0.78,
		CandidatesKey, 3,
		DurationMsKey, 12,
		SelectedTargetKey, "churn",
	)
}

func TestDetectionLogLines(t *testing.T) {
	tl, _ := NewTestLogger(LevelDebug)
	logDetectionRun(tl, "job-001")

	entries, err := tl.GetLogEntries()
	require.NoError(t, err)

	var messages []string
	for _, e := range entries {
		messages = append(messages, e["message"].(string))
		assert.Equal(t, "job-001", e[JobIDKey], e["message"])
	}
	assert.Equal(t, []string{
		"Target detection started",
		"Column filtered as ID",
		"Column filter finished",
		"Column scored",
		"Predictability probe degraded",
		"Target decision computed",
	}, messages)

	degraded := entries[4]
	assert.Equal(t, "WARN", degraded["level"])
	assert.Equal(t, "status", degraded[ColumnKey])
	assert.Equal(t, "single_class_target", degraded[NoteKey])

	decision := entries[5]
	assert.Equal(t, "INFO", decision["level"])
	assert.Equal(t, PhaseDecision, decision[PhaseKey])
	assert.Equal(t, "auto", decision[DecisionModeKey])
	assert.Equal(t, "churn", decision[SelectedTargetKey])
	assert.InDelta(t, 0.78, decision[ScoreKey], 1e-12)
	assert.Equal(t, 3.0, decision[CandidatesKey]) // JSON numbers are float64

	scored := entries[3]
	comps, ok := scored[ComponentsKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.9, comps["P"])
}

func TestDetectionLogLevels(t *testing.T) {
	tl, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()
	assert.False(t, tl.Enabled(ctx, LevelDebug))
	assert.True(t, tl.Enabled(ctx, LevelWarn))

	logDetectionRun(tl, "job-002")

	entries, err := tl.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.False(t, tl.ContainsMessage("Column scored"))
	assert.False(t, tl.ContainsMessage("Column filtered as ID"))
	assert.True(t, tl.ContainsMessage("Predictability probe degraded"))
	assert.True(t, tl.ContainsMessage("Target decision computed"))

	warnOnly, _ := NewTestLogger(LevelWarn)
	logDetectionRun(warnOnly, "job-003")
	entries, err = warnOnly.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Predictability probe degraded", entries[0]["message"])
}

func TestComponentDegradedLogsColumnError(t *testing.T) {
	tl, _ := NewTestLogger(LevelDebug)

	cause := errors.New("column variance is not finite")
	tl.Debug("Component degraded to neutral value",
		ColumnKey, "spend",
		ErrAttrKey, errors.NewColumnComputationError("spend", "V", cause),
	)

	entries, err := tl.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "spend", entries[0][ColumnKey])
	msg, ok := entries[0][ErrAttrKey].(string)
	require.True(t, ok)
	assert.Contains(t, msg, "spend")
	assert.Contains(t, msg, "column variance is not finite")
}

func TestConfigErrorLeadingField(t *testing.T) {
	tl, _ := NewTestLogger(LevelError)

	tl.Error("Detection failed",
		errors.NewConfigError("weights.p", "must be a finite non-negative number", -1.0),
		OperationKey, OperationDetect,
		ErrorCodeKey, ErrorInvalidConfig,
	)

	entries, err := tl.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, ErrorInvalidConfig, entries[0][ErrorCodeKey])
	assert.Contains(t, entries[0][ErrAttrKey], "weights.p")
}

func TestLoggerProviderComponents(t *testing.T) {
	provider, buf := NewTestLoggerProvider(LevelDebug)

	provider.GetLoggerWithName("ingest").Info("CSV loaded", SamplesKey, 300)
	provider.GetLoggerWithName("target").Info("Target detection started")
	provider.SetLevel(LevelWarn)
	provider.GetLogger().Info("suppressed")

	assert.Same(t, buf, provider.GetBuffer())
	assert.True(t, provider.logger.ContainsField(ComponentKey, "ingest"))
	assert.True(t, provider.logger.ContainsField(ComponentKey, "target"))
	assert.False(t, provider.logger.ContainsMessage("suppressed"))
}

func TestConcurrentColumnWorkers(t *testing.T) {
	tl, _ := NewTestLogger(LevelDebug)
	jl := tl.With(JobIDKey, "job-par", WorkersKey, 4)

	columns := 12
	var wg sync.WaitGroup
	for i := range columns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jl.Debug("Column scored",
				PhaseKey, PhaseScoring,
				ColumnKey, fmt.Sprintf("col_%02d", i),
				ScoreKey, float64(i)/float64(columns),
			)
		}()
	}
	wg.Wait()

	entries, err := tl.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, columns)

	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e[ColumnKey].(string)] = true
		assert.Equal(t, 4.0, e[WorkersKey])
	}
	assert.Len(t, seen, columns)
}

func BenchmarkColumnScoredLogging(b *testing.B) {
	tl, _ := NewTestLogger(LevelDebug)
	jl := tl.With(JobIDKey, "bench-job", ComponentKey, "target")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		jl.Debug("Column scored",
			PhaseKey, PhaseScoring,
			ColumnKey, "churn",
			ScoreKey, 0.5,
		)
	}
}
