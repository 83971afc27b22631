// Package store persists detection results.
//
// Backends register themselves by driver name; Open constructs one from the
// configured driver. The file backend is always available, the sqlite backend
// is registered by importing store/sqlite.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/pkg/errors"
	"github.com/caminoshaciaelexitopersonal-oss/DatAnalitic/target"
)

// ErrNotFound is returned by Load when no result exists for a job id.
var ErrNotFound = errors.New("store: job not found")

// Store saves and loads the decision and dataset summary of a detection job.
type Store interface {
	Save(ctx context.Context, res target.Result) error
	Load(ctx context.Context, jobID string) (target.Result, error)
	Close() error
}

// Config selects and parameterizes a backend. Location is a directory for the
// file driver and a DSN for sqlite.
type Config struct {
	Driver   string
	Location string
}

// Factory opens a backend.
type Factory func(ctx context.Context, cfg Config) (Store, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under driver. It panics on an empty
// driver, a nil factory or a duplicate registration.
func Register(driver string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if driver == "" {
		panic("store: Register called with empty driver")
	}
	if f == nil {
		panic("store: Register called with nil factory")
	}
	if _, exists := factories[driver]; exists {
		panic(fmt.Sprintf("store: factory already registered for driver=%q", driver))
	}
	factories[driver] = f
}

// Drivers lists the registered driver names in sorted order.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Open constructs the backend registered for cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	mu.RLock()
	f, ok := factories[cfg.Driver]
	mu.RUnlock()
	if !ok {
		return nil, errors.NewValidationError("driver", "no store registered (known: "+strings.Join(Drivers(), ", ")+")", cfg.Driver)
	}
	return f(ctx, cfg)
}

// ValidateJobID rejects ids that are empty or could escape a job directory.
func ValidateJobID(jobID string) error {
	switch {
	case strings.TrimSpace(jobID) == "":
		return errors.NewValidationError("job_id", "must not be empty", jobID)
	case jobID == "." || jobID == "..":
		return errors.NewValidationError("job_id", "must not be a relative path element", jobID)
	case strings.ContainsAny(jobID, `/\`) || strings.ContainsRune(jobID, 0):
		return errors.NewValidationError("job_id", "must not contain path separators", jobID)
	}
	return nil
}
