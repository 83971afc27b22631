package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

// Artifact paths relative to a job directory.
const (
	DecisionFile = "target.json"
	SummaryFile  = "eda/summary.json"
	ManifestFile = "manifest.json"
)

// Manifest indexes the artifacts written for a job.
type Manifest struct {
	JobID          string              `json:"job_id"`
	DatasetHash    string              `json:"dataset_hash"`
	DecisionMode   target.DecisionMode `json:"decision_mode"`
	SelectedTarget *string             `json:"selected_target"`
	Artifacts      []string            `json:"artifacts"`
}

func init() {
	Register("file", func(_ context.Context, cfg Config) (Store, error) {
		return NewFileStore(cfg.Location)
	})
}

// FileStore writes one directory per job under a base directory. Every file
// is replaced atomically, so readers never observe a partial artifact.
type FileStore struct {
	dir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.NewValidationError("dir", "must not be empty", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create store directory %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// JobDir returns the directory holding the artifacts of jobID.
func (s *FileStore) JobDir(jobID string) string {
	return filepath.Join(s.dir, jobID)
}

// Save writes target.json, eda/summary.json and, last, manifest.json.
func (s *FileStore) Save(ctx context.Context, res target.Result) error {
	jobID := res.Decision.JobID
	if err := ValidateJobID(jobID); err != nil {
		return err
	}
	dir := s.JobDir(jobID)

	writes := []struct {
		rel string
		v   any
	}{
		{DecisionFile, res.Decision},
		{SummaryFile, res.Summary},
		{ManifestFile, Manifest{
			JobID:          jobID,
			DatasetHash:    res.Summary.DatasetHash,
			DecisionMode:   res.Decision.DecisionMode,
			SelectedTarget: res.Decision.SelectedTarget,
			Artifacts:      []string{DecisionFile, SummaryFile},
		}},
	}
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := WriteJSONAtomic(filepath.Join(dir, filepath.FromSlash(w.rel)), w.v); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the decision and summary of jobID.
func (s *FileStore) Load(_ context.Context, jobID string) (target.Result, error) {
	if err := ValidateJobID(jobID); err != nil {
		return target.Result{}, err
	}
	dir := s.JobDir(jobID)

	var res target.Result
	if err := readJSON(filepath.Join(dir, DecisionFile), &res.Decision); err != nil {
		return target.Result{}, err
	}
	if err := readJSON(filepath.Join(dir, filepath.FromSlash(SummaryFile)), &res.Summary); err != nil {
		return target.Result{}, err
	}
	return res, nil
}

// LoadManifest reads the manifest of jobID.
func (s *FileStore) LoadManifest(jobID string) (Manifest, error) {
	if err := ValidateJobID(jobID); err != nil {
		return Manifest{}, err
	}
	var m Manifest
	err := readJSON(filepath.Join(s.JobDir(jobID), ManifestFile), &m)
	return m, err
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

// WriteJSONAtomic encodes v as indented JSON into a temporary file in the
// destination directory and renames it over path.
func WriteJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	b = append(b, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", path)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(ErrNotFound, "%s", path)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
