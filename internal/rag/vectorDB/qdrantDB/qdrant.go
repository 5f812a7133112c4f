package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/vectorDB"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Config struct {
	Host       string
	Port       int
	VectorSize uint64
}

// DB is an explicit qdrant handle implementing vectorDB.Store. Construct
// one at startup and Close it on shutdown.
type DB struct {
	client     *qdrant.Client
	vectorSize uint64
	logger     *logger_i.Logger
}

func New(ctx context.Context, cfg Config) (*DB, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	db := &DB{
		client:     client,
		vectorSize: cfg.VectorSize,
		logger:     logger_i.NewLogger("Qdrant"),
	}

	healthCtx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	if _, err := client.HealthCheck(healthCtx); err != nil {
		return nil, fmt.Errorf("qdrant unreachable at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	// The answer cache collection is infrastructure, not corpus state; it
	// always exists and never gets dropped by a force reindex.
	if err := db.createCollection(ctx, config.SemanticCacheDBName); err != nil {
		db.logger.Error("Semantic cache collection creation failed", "error", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	db.logger.Info("Shutting down Qdrant")
	return db.client.Close()
}

func (db *DB) EnsureCollection(ctx context.Context) error {
	return db.createCollection(ctx, config.EmbeddingDBName)
}

func (db *DB) RecreateCollection(ctx context.Context) error {
	exists, err := db.client.CollectionExists(ctx, config.EmbeddingDBName)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", config.EmbeddingDBName, err)
	}
	if exists {
		if err := db.client.DeleteCollection(ctx, config.EmbeddingDBName); err != nil {
			return fmt.Errorf("deleting collection %q: %w", config.EmbeddingDBName, err)
		}
	}
	return db.createCollection(ctx, config.EmbeddingDBName)
}

func (db *DB) Search(ctx context.Context, vector []float32, limit uint64, scoreThreshold float32) ([]ragmodel.CandidatePassage, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.EmbeddingDBName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(limit),
		ScoreThreshold: qdrant.PtrOf(scoreThreshold),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	passages := make([]ragmodel.CandidatePassage, 0, len(result))
	for _, hit := range result {
		passages = append(passages, ragmodel.CandidatePassage{
			Text:       hit.Payload["content"].GetStringValue(),
			Document:   hit.Payload["document"].GetStringValue(),
			Section:    hit.Payload["section"].GetStringValue(),
			Category:   hit.Payload["category"].GetStringValue(),
			ChunkIndex: int(hit.Payload["chunk_index"].GetIntegerValue()),
			Score:      hit.Score,
		})
	}

	loggr.Debug("Vector search done", "hits", len(passages))
	return passages, nil
}

func (db *DB) UpsertBatch(ctx context.Context, points []vectorDB.Point) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.Id),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":     p.Chunk.Text,
				"document":    p.Chunk.Document,
				"section":     p.Chunk.Title,
				"category":    p.Chunk.Category,
				"chunk_index": p.Chunk.Index,
				"token_count": p.Chunk.TokenCount,
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.EmbeddingDBName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *DB) CollectionStats(ctx context.Context) (vectorDB.Stats, error) {
	count, err := db.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: config.EmbeddingDBName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return vectorDB.Stats{}, fmt.Errorf("qdrant count failed: %w", err)
	}
	return vectorDB.Stats{
		CollectionName: config.EmbeddingDBName,
		PointsCount:    count,
		VectorSize:     db.vectorSize,
	}, nil
}

func (db *DB) createCollection(ctx context.Context, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     db.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
