package qdrantDB

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
)

// GetCachedAnswer looks the query embedding up in the answer cache. The
// payload carries the full serialized response so a hit keeps its
// citations intact.
func (db *DB) GetCachedAnswer(ctx context.Context, queryVector []float32) (*ragmodel.Response, bool, error) {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	searchResult, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.SemanticCacheDBName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(1)),
		ScoreThreshold: qdrant.PtrOf(config.CacheSimilarityCutoff),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Cache Query failed", "error", err)
		return nil, false, fmt.Errorf("cache query failed: %w", err)
	}
	if len(searchResult) == 0 {
		return nil, false, nil
	}

	var response ragmodel.Response
	raw := searchResult[0].Payload["response"].GetStringValue()
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		loggr.Warn("Cached payload undecodable, treating as miss", "error", err)
		return nil, false, nil
	}

	loggr.Info("Semantic cache hit", "score", searchResult[0].Score)
	return &response, true, nil
}

func (db *DB) SaveToCache(ctx context.Context, id string, vector []float32, response *ragmodel.Response) error {
	loggr := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshaling response for cache: %w", err)
	}

	loggr.Debug("Saving answer to cache")
	_, err = db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.SemanticCacheDBName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(id),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"response":  string(raw),
					"timestamp": time.Now().Unix(),
				}),
			},
		},
	})
	if err != nil {
		loggr.Error("Saving answer to cache failed", "error", err)
		return err
	}
	return nil
}
