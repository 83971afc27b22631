package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/dataset"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

func fixtureResult(jobID string) target.Result {
	ds := dataset.MustNew(
		dataset.NewNumeric("x", []float64{1, 2, 3, 4}),
		dataset.NewCategorical("churn", []string{"y", "n", "y", "n"}, nil),
	)
	decision := target.Decide(jobID, []target.CandidateScore{
		{Column: "churn", Score: 0.8},
		{Column: "x", Score: 0.4},
	}, target.DefaultConfig().Thresholds, 5)
	return target.Result{Decision: decision, Summary: dataset.Summarize(ds)}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "jobs"))
	require.NoError(t, err)
	defer s.Close()

	res := fixtureResult("job-1")
	require.NoError(t, s.Save(ctx, res))

	for _, rel := range []string{DecisionFile, SummaryFile, ManifestFile} {
		_, err := os.Stat(filepath.Join(s.JobDir("job-1"), filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
	tmps, err := filepath.Glob(filepath.Join(s.JobDir("job-1"), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmps)

	got, err := s.Load(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, res, got)

	m, err := s.LoadManifest("job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", m.JobID)
	assert.Equal(t, res.Summary.DatasetHash, m.DatasetHash)
	assert.Equal(t, target.ModeAuto, m.DecisionMode)
	require.NotNil(t, m.SelectedTarget)
	assert.Equal(t, "churn", *m.SelectedTarget)
	assert.Equal(t, []string{DecisionFile, SummaryFile}, m.Artifacts)
}

func TestFileStoreDeterministicBytes(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(s.JobDir("job-2"), DecisionFile)
	require.NoError(t, s.Save(ctx, fixtureResult("job-2")))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, fixtureResult("job-2")))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileStoreErrors(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Load(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Save(ctx, fixtureResult(id)), id)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, s.Save(cancelled, fixtureResult("job-3")), context.Canceled)

	_, err = NewFileStore("")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: "file", Location: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
	assert.Contains(t, Drivers(), "file")

	_, err = Open(ctx, Config{Driver: "redis"})
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { Register("", func(context.Context, Config) (Store, error) { return nil, nil }) })
	assert.Panics(t, func() { Register("x-nil", nil) })
	assert.Panics(t, func() {
		Register("file", func(context.Context, Config) (Store, error) { return nil, nil })
	})
}
