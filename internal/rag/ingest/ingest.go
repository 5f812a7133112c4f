package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/chunker"
	"github.com/physai/bookrag/internal/rag/embedding"
	"github.com/physai/bookrag/internal/rag/vectorDB"
	"github.com/physai/bookrag/pkg/logger_i"
)

// Pipeline walks a corpus directory, chunks and embeds every supported
// document and upserts the vectors. One batched embedding call per
// document, fixed-size upsert batches across document boundaries.
type Pipeline struct {
	chunker  *chunker.Chunker
	embedder embedding.Embedder
	store    vectorDB.Store
	logger   *logger_i.Logger
}

func NewPipeline(ch *chunker.Chunker, e embedding.Embedder, store vectorDB.Store) *Pipeline {
	return &Pipeline{
		chunker:  ch,
		embedder: e,
		store:    store,
		logger:   logger_i.NewLogger("Indexing Pipeline "),
	}
}

// Run indexes the corpus under root. A failing document is logged,
// recorded in the result and skipped; a failing collection or upsert call
// fails the whole run. forceReindex drops the collection first.
func (p *Pipeline) Run(ctx context.Context, runId string, root string, forceReindex bool) ragmodel.IndexResult {
	log := p.logger.With("runId", runId)
	result := ragmodel.IndexResult{
		RunId:     runId,
		Status:    ragmodel.RunRunning,
		StartedAt: time.Now(),
	}

	var err error
	if forceReindex {
		log.Info("Force reindex requested, recreating collection")
		err = p.store.RecreateCollection(ctx)
	} else {
		err = p.store.EnsureCollection(ctx)
	}
	if err != nil {
		return failRun(result, fmt.Errorf("preparing collection: %w", err))
	}

	files, err := discoverFiles(root)
	if err != nil {
		return failRun(result, fmt.Errorf("walking corpus %q: %w", root, err))
	}
	log.Info("Corpus discovered", "files", len(files), "root", root)

	var pending []vectorDB.Point
	for _, path := range files {
		if ctx.Err() != nil {
			return failRun(result, ctx.Err())
		}

		doc, err := p.loadDocument(root, path)
		if err != nil {
			log.Error("Skipping document", "path", path, "error", err)
			result.Failures = append(result.Failures, ragmodel.FileFailure{Path: path, Error: err.Error()})
			continue
		}

		chunks := p.chunker.ChunkDocument(doc.RelPath, doc.Title, doc.Category, doc.Body)
		if len(chunks) == 0 {
			log.Warn("Document produced no chunks", "path", path)
			result.FilesProcessed++
			continue
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Text
		}
		vectors, err := p.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			log.Error("Skipping document, embedding failed", "path", path, "error", err)
			result.Failures = append(result.Failures, ragmodel.FileFailure{Path: path, Error: err.Error()})
			continue
		}

		for i, c := range chunks {
			pending = append(pending, vectorDB.Point{
				Id:     PointId(c.Document, c.Index),
				Vector: vectors[i],
				Chunk:  c,
			})
		}

		for len(pending) >= config.UpsertBatchSize {
			if err := p.store.UpsertBatch(ctx, pending[:config.UpsertBatchSize]); err != nil {
				return failRun(result, fmt.Errorf("upserting batch: %w", err))
			}
			pending = pending[config.UpsertBatchSize:]
		}

		result.FilesProcessed++
		result.ChunksCreated += len(chunks)
	}

	if len(pending) > 0 {
		if err := p.store.UpsertBatch(ctx, pending); err != nil {
			return failRun(result, fmt.Errorf("upserting final batch: %w", err))
		}
	}

	result.Status = ragmodel.RunCompleted
	result.FinishedAt = time.Now()
	log.Info("Indexing run finished",
		"files", result.FilesProcessed, "chunks", result.ChunksCreated, "failures", len(result.Failures))
	return result
}

// PointId derives a stable UUID from the chunk identity so re-indexing an
// unchanged corpus upserts every point in place.
func PointId(document string, chunkIndex int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(document+"#"+strconv.Itoa(chunkIndex))).String()
}

func failRun(result ragmodel.IndexResult, err error) ragmodel.IndexResult {
	result.Status = ragmodel.RunFailed
	result.Error = err.Error()
	result.FinishedAt = time.Now()
	return result
}
