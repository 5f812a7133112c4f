package store

import (
	"context"
	"encoding/json"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/data/redisStore"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/pkg/logger_i"
)

const (
	runKeyPrefix = "index-run:"
	latestRunKey = "index-run:latest"
	runLockKey   = "index-run:lock"
)

// RunStore persists indexing-run records and owns the single-flight lock
// that rejects a second concurrent run.
type RunStore interface {
	SaveRun(ctx context.Context, run ragmodel.IndexResult) error
	GetRun(ctx context.Context, runId string) (ragmodel.IndexResult, bool)
	LatestRun(ctx context.Context) (ragmodel.IndexResult, bool)
	TryLockRun(ctx context.Context, runId string) (bool, error)
	UnlockRun(ctx context.Context) error
}

type RedisRunStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisRunStore(store *redisStore.Store) *RedisRunStore {
	return &RedisRunStore{
		store:  store,
		logger: logger_i.NewLogger("RunStore"),
	}
}

func (s *RedisRunStore) SaveRun(ctx context.Context, run ragmodel.IndexResult) error {
	log := s.logger.With("runId", run.RunId)

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, runKeyPrefix+run.RunId, data, config.RedisIndexRunTTL); err != nil {
		return err
	}
	if err := s.store.Set(ctx, latestRunKey, run.RunId, config.RedisIndexRunTTL); err != nil {
		return err
	}
	log.Debug("Saved run record", "status", run.Status)
	return nil
}

func (s *RedisRunStore) GetRun(ctx context.Context, runId string) (ragmodel.IndexResult, bool) {
	var run ragmodel.IndexResult

	val, err := s.store.Get(ctx, runKeyPrefix+runId)
	if err != nil {
		if !s.store.IsNil(err) {
			s.logger.Error("Error reading run record", "runId", runId, "error", err)
		}
		return run, false
	}
	if err := json.Unmarshal([]byte(val), &run); err != nil {
		s.logger.Error("Undecodable run record", "runId", runId, "error", err)
		return run, false
	}
	return run, true
}

func (s *RedisRunStore) LatestRun(ctx context.Context) (ragmodel.IndexResult, bool) {
	runId, err := s.store.Get(ctx, latestRunKey)
	if err != nil {
		return ragmodel.IndexResult{}, false
	}
	return s.GetRun(ctx, runId)
}

// TryLockRun returns false while another run holds the lock. The TTL
// keeps a crashed run from blocking indexing forever.
func (s *RedisRunStore) TryLockRun(ctx context.Context, runId string) (bool, error) {
	return s.store.SetNX(ctx, runLockKey, runId, config.RedisLockTTL)
}

func (s *RedisRunStore) UnlockRun(ctx context.Context) error {
	return s.store.Del(ctx, runLockKey)
}
