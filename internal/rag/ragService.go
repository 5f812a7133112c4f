package rag

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/metrics"
	"github.com/physai/bookrag/internal/rag/chunker"
	"github.com/physai/bookrag/internal/rag/embedding"
	"github.com/physai/bookrag/internal/rag/generate"
	"github.com/physai/bookrag/internal/rag/ingest"
	"github.com/physai/bookrag/internal/rag/llm"
	"github.com/physai/bookrag/internal/rag/retrieval"
	"github.com/physai/bookrag/internal/rag/vectorDB"
	"github.com/physai/bookrag/pkg/logger_i"
)

// Validation errors map to 400s at the transport layer; ErrUnavailable
// maps to a 503.
var (
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrQuestionTooLong   = errors.New("question is too long")
	ErrSelectionTooShort = errors.New("selected text is too short")
	ErrSelectionTooLong  = errors.New("selected text is too long")
	ErrUnavailable       = errors.New("backing service unavailable")
)

type GlobalQuery struct {
	Question       string
	ConversationId string
	TopK           int
	ScoreThreshold float32
}

type GroundedQuery struct {
	Question       string
	SelectedText   string
	ConversationId string
}

// Service is the one contract the transports (HTTP handlers, MCP tools)
// call. They never see the vector store, the embedder or the LLM
// directly.
type Service interface {
	QueryGlobal(ctx context.Context, query GlobalQuery) (*ragmodel.Response, error)
	QueryGrounded(ctx context.Context, query GroundedQuery) (*ragmodel.Response, error)
	Retrieve(ctx context.Context, query string, k int, scoreThreshold float32) ([]ragmodel.CandidatePassage, error)
	IndexCorpus(ctx context.Context, runId string, corpusRoot string, forceReindex bool) ragmodel.IndexResult
	CollectionStats(ctx context.Context) (vectorDB.Stats, error)
}

type service struct {
	vectorDB  vectorDB.Store
	embedder  embedding.Embedder
	retriever *retrieval.Retriever
	generator *generate.Generator
	pipeline  *ingest.Pipeline
	logger    *logger_i.Logger
}

// NewService wires the pipeline stages around one store, one embedder and
// one LLM provider, all chosen at startup.
func NewService(store vectorDB.Store, provider llm.Provider, em embedding.Embedder, ch *chunker.Chunker) Service {
	return &service{
		vectorDB:  store,
		embedder:  em,
		retriever: retrieval.New(em, store),
		generator: generate.New(provider),
		pipeline:  ingest.NewPipeline(ch, em, store),
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) QueryGlobal(ctx context.Context, query GlobalQuery) (*ragmodel.Response, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	if err := validateQuestion(query.Question); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.CaptureQueryMetrics("global", time.Since(start)) }()

	queryCtx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	// Embedding
	vector, err := s.executeEmbeddingStep(queryCtx, query.Question)
	if err != nil {
		return nil, err
	}

	// Cache Check
	if cached, found := s.executeCacheCheckStep(queryCtx, vector); found {
		cached.ConversationId = resolveConversationId(query.ConversationId)
		return cached, nil
	}

	// Vector DB Search
	passages, err := s.executeSearchStep(queryCtx, vector, query.TopK, query.ScoreThreshold)
	if err != nil {
		return nil, err
	}

	// LLM Generation
	response, err := s.executeGlobalLLMStep(queryCtx, query.Question, passages, query.ConversationId)
	if err != nil {
		return nil, err
	}

	if generate.IsRefusal(response.Answer) {
		metrics.IncrementRefusals("global")
		return response, nil
	}

	// Background Cache Save, refusals stay out of the cache
	go s.saveToCache(vector, response, log)

	return response, nil
}

func (s *service) QueryGrounded(ctx context.Context, query GroundedQuery) (*ragmodel.Response, error) {
	if err := validateQuestion(query.Question); err != nil {
		return nil, err
	}
	if err := validateSelection(query.SelectedText); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.CaptureQueryMetrics("grounded", time.Since(start)) }()

	queryCtx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	response, err := s.executeGroundedLLMStep(queryCtx, query)
	if err != nil {
		return nil, err
	}

	if generate.IsRefusal(response.Answer) {
		metrics.IncrementRefusals("grounded")
	}
	return response, nil
}

func (s *service) Retrieve(ctx context.Context, query string, k int, scoreThreshold float32) ([]ragmodel.CandidatePassage, error) {
	if err := validateQuestion(query); err != nil {
		return nil, err
	}

	queryCtx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	vector, err := s.executeEmbeddingStep(queryCtx, query)
	if err != nil {
		return nil, err
	}
	return s.executeSearchStep(queryCtx, vector, k, scoreThreshold)
}

func (s *service) IndexCorpus(ctx context.Context, runId string, corpusRoot string, forceReindex bool) ragmodel.IndexResult {
	metrics.SetIndexRunActive(true)
	defer metrics.SetIndexRunActive(false)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("corpus_indexing", time.Since(start)) }()

	result := s.pipeline.Run(ctx, runId, corpusRoot, forceReindex)
	metrics.AddIndexedChunks(result.ChunksCreated)
	return result
}

func (s *service) CollectionStats(ctx context.Context) (vectorDB.Stats, error) {
	stats, err := s.vectorDB.CollectionStats(ctx)
	if err != nil {
		return vectorDB.Stats{}, wrapUnavailable(err)
	}
	return stats, nil
}

func validateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	if len(question) > config.MaxQuestionLength {
		return ErrQuestionTooLong
	}
	return nil
}

// validateSelection rejects a short non-empty selection. A fully empty
// selection passes through so the generator can short-circuit it into the
// canonical refusal.
func validateSelection(selection string) error {
	trimmed := strings.TrimSpace(selection)
	if trimmed == "" {
		return nil
	}
	if len(selection) > config.MaxSelectionLength {
		return ErrSelectionTooLong
	}
	if len(strings.Fields(trimmed)) < config.MinSelectionWords {
		return ErrSelectionTooShort
	}
	return nil
}

func resolveConversationId(conversationId string) string {
	if conversationId != "" {
		return conversationId
	}
	return uuid.NewString()
}
