package store

import (
	"context"
	"sync"

	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/pkg/logger_i"
)

// InMemoryRunStore is the fallback when redis is offline. Run records
// then only live as long as the process.
type InMemoryRunStore struct {
	mu       sync.RWMutex
	runs     map[string]ragmodel.IndexResult
	latest   string
	lockedBy string
	logger   *logger_i.Logger
}

func InitInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runs:   make(map[string]ragmodel.IndexResult),
		logger: logger_i.NewLogger("InMem RunStore"),
	}
}

func (s *InMemoryRunStore) SaveRun(ctx context.Context, run ragmodel.IndexResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.RunId] = run
	s.latest = run.RunId
	s.logger.Debug("Saved run record", "runId", run.RunId, "status", run.Status)
	return nil
}

func (s *InMemoryRunStore) GetRun(ctx context.Context, runId string) (ragmodel.IndexResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, found := s.runs[runId]
	return run, found
}

func (s *InMemoryRunStore) LatestRun(ctx context.Context) (ragmodel.IndexResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == "" {
		return ragmodel.IndexResult{}, false
	}
	run, found := s.runs[s.latest]
	return run, found
}

func (s *InMemoryRunStore) TryLockRun(ctx context.Context, runId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockedBy != "" {
		return false, nil
	}
	s.lockedBy = runId
	return true, nil
}

func (s *InMemoryRunStore) UnlockRun(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockedBy = ""
	return nil
}
