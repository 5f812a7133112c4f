package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, run status falls back to an in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5
	RATE_LIMITER_IDLE_EVICTION      = 10 * time.Minute

	//chunking
	ChunkSizeTokens    = 512
	ChunkOverlapTokens = 64
	TokenEncoding      = "cl100k_base"

	//retrieval
	TopKResults                 = 5
	SimilarityThreshold float32 = 0.70

	//semantic answer cache
	CacheSimilarityCutoff float32 = 0.97

	//vector collections
	EmbeddingDBName     = "book-chapters"
	SemanticCacheDBName = "semantic-cache"
	UpsertBatchSize     = 100

	//embeddings - index-time and query-time models always match
	EmbeddingOutputDimensionality int32  = 1536
	OpenAIEmbeddingModel                 = "text-embedding-3-small"
	GoogleEmbeddingModel                 = "gemini-embedding-001"
	EmbeddingVectorSize           uint64 = 1536

	//llm
	OpenAIChatModel = "gpt-4o"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"

	ModelTemperature float64 = 0.0

	//request validation
	MinSelectionWords  = 3
	MaxQuestionLength  = 1000
	MaxSelectionLength = 10000

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//per-request budget for the full embed -> search -> generate path
	QueryTimeout = 30 * time.Second

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//redis has 16 DB we can use
	RedisIndexRunStore = 0

	//redis timeouts
	RedisIndexRunTTL  = 24 * time.Hour
	RedisLockTTL      = 2 * time.Hour
	RedisDialTimeout  = 5 * time.Second
	RedisReadTimeout  = 3 * time.Second
	RedisWriteTimeout = 3 * time.Second
)
