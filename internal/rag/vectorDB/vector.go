package vectorDB

import (
	"context"

	"github.com/physai/bookrag/internal/domain/ragmodel"
)

// Point is one embedded chunk ready for upsert. Id must be a UUID string;
// callers derive it from the chunk identity so re-upserts land in place.
type Point struct {
	Id     string
	Vector []float32
	Chunk  ragmodel.Chunk
}

type Stats struct {
	CollectionName string `json:"collectionName"`
	PointsCount    uint64 `json:"pointsCount"`
	VectorSize     uint64 `json:"vectorSize"`
}

type Store interface {
	Search(ctx context.Context, vector []float32, limit uint64, scoreThreshold float32) ([]ragmodel.CandidatePassage, error)
	GetCachedAnswer(ctx context.Context, queryVector []float32) (*ragmodel.Response, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, response *ragmodel.Response) error

	// EnsureCollection is the normal-run path; RecreateCollection backs
	// force reindexing (drop and start clean).
	EnsureCollection(ctx context.Context) error
	RecreateCollection(ctx context.Context) error
	UpsertBatch(ctx context.Context, points []Point) error
	CollectionStats(ctx context.Context) (Stats, error)
}
