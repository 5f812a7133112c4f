package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/physai/bookrag/internal/data/redisStore"
	"github.com/physai/bookrag/internal/data/store"
	"github.com/physai/bookrag/internal/domain/ragmodel"
)

func newRedisRunStore(t *testing.T) *store.RedisRunStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.NewRedisRunStore(redisStore.NewTestStore(client))
}

func runStoreContract(t *testing.T, s store.RunStore) {
	ctx := context.Background()

	run := ragmodel.IndexResult{
		RunId:          "run_abc_123",
		Status:         ragmodel.RunRunning,
		FilesProcessed: 3,
		ChunksCreated:  41,
		Failures:       []ragmodel.FileFailure{{Path: "bad.pdf", Error: "timeout"}},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		got, found := s.GetRun(ctx, run.RunId)
		if !found {
			t.Fatal("Run was saved but not found")
		}
		if got.Status != ragmodel.RunRunning || got.ChunksCreated != 41 {
			t.Errorf("Data mismatch! Got %+v", got)
		}
		if len(got.Failures) != 1 || got.Failures[0].Path != "bad.pdf" {
			t.Errorf("Failures lost in roundtrip: %+v", got.Failures)
		}
	})

	t.Run("Latest Run Tracks Last Save", func(t *testing.T) {
		second := run
		second.RunId = "run_def_456"
		second.Status = ragmodel.RunCompleted
		if err := s.SaveRun(ctx, second); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		latest, found := s.LatestRun(ctx)
		if !found {
			t.Fatal("LatestRun found nothing after saves")
		}
		if latest.RunId != "run_def_456" {
			t.Errorf("LatestRun got %s, want run_def_456", latest.RunId)
		}
	})

	t.Run("Get Non-Existent Run", func(t *testing.T) {
		if _, found := s.GetRun(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent run")
		}
	})

	t.Run("Lock Is Single Flight", func(t *testing.T) {
		ok, err := s.TryLockRun(ctx, "run-1")
		if err != nil || !ok {
			t.Fatalf("first lock must succeed, got ok=%v err=%v", ok, err)
		}

		ok, err = s.TryLockRun(ctx, "run-2")
		if err != nil {
			t.Fatalf("second lock errored: %v", err)
		}
		if ok {
			t.Error("second lock must be rejected while the first is held")
		}

		if err := s.UnlockRun(ctx); err != nil {
			t.Fatalf("UnlockRun failed: %v", err)
		}

		ok, err = s.TryLockRun(ctx, "run-3")
		if err != nil || !ok {
			t.Errorf("lock must succeed after unlock, got ok=%v err=%v", ok, err)
		}
		_ = s.UnlockRun(ctx)
	})
}

func TestRedisRunStore(t *testing.T) {
	runStoreContract(t, newRedisRunStore(t))
}

func TestInMemoryRunStore(t *testing.T) {
	runStoreContract(t, store.InitInMemoryRunStore())
}

func TestRedisRunStore_FallsBackCleanly(t *testing.T) {
	// Construction against a dead address must error, not hang or panic;
	// main falls back to the in-memory store on this path.
	if _, err := redisStore.New(context.Background(), "127.0.0.1:1", "", 0); err == nil {
		t.Error("expected an error connecting to a dead redis")
	}
}
