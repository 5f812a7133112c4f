package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/data/redisStore"
	"github.com/physai/bookrag/internal/data/store"
	"github.com/physai/bookrag/internal/handlers"
	"github.com/physai/bookrag/internal/middleware"
	"github.com/physai/bookrag/internal/rag"
	"github.com/physai/bookrag/internal/rag/chunker"
	"github.com/physai/bookrag/internal/rag/embedding"
	"github.com/physai/bookrag/internal/rag/embedding/googleEmbedding"
	"github.com/physai/bookrag/internal/rag/embedding/openaiEmbedding"
	"github.com/physai/bookrag/internal/rag/llm"
	"github.com/physai/bookrag/internal/rag/llm/gemini"
	"github.com/physai/bookrag/internal/rag/llm/openaiChat"
	"github.com/physai/bookrag/internal/rag/vectorDB/qdrantDB"
	"github.com/physai/bookrag/internal/server"
	"github.com/physai/bookrag/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Error("Bad configuration", "error", err)
		return
	}
	middleware.Init(env)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//run records live in redis so status survives restarts
	var runStore store.RunStore
	redisClient, err := redisStore.New(serviceContext, env.RedisAddr, env.RedisPassword, config.RedisIndexRunStore)
	if err != nil {
		logger.Error("Redis is offline", "error", err)
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			return
		}
		runStore = store.InitInMemoryRunStore()
	} else {
		defer redisClient.Close()
		runStore = store.NewRedisRunStore(redisClient)
	}

	embedder, llmProvider, err := buildProviders(serviceContext, env)
	if err != nil {
		logger.Error("Provider initialization failed", "error", err)
		return
	}

	vectorStore, err := qdrantDB.New(serviceContext, qdrantDB.Config{
		Host:       env.QdrantHost,
		Port:       env.QdrantPort,
		VectorSize: embedder.Dimension(),
	})
	if err != nil {
		logger.Error("Qdrant initialization failed", "error", err)
		return
	}
	defer vectorStore.Close()

	textChunker, err := chunker.New(config.ChunkSizeTokens, config.ChunkOverlapTokens)
	if err != nil {
		logger.Error("Chunker initialization failed", "error", err)
		return
	}

	ragService := rag.NewService(vectorStore, llmProvider, embedder, textChunker)
	handler := handlers.NewHandler(ragService, runStore, env.CorpusPath)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildProviders(ctx context.Context, env *config.Env) (embedding.Embedder, llm.Provider, error) {
	var embedder embedding.Embedder
	var err error
	switch env.EmbeddingProvider {
	case config.ProviderGoogle:
		embedder, err = googleEmbedding.New(ctx, env.GoogleAPIKey)
		if err != nil {
			return nil, nil, err
		}
	default:
		embedder = openaiEmbedding.New(env.OpenAIAPIKey)
	}

	var provider llm.Provider
	switch env.LLMProvider {
	case config.ProviderGoogle:
		provider, err = gemini.New(ctx, env.GoogleAPIKey)
		if err != nil {
			return nil, nil, err
		}
	default:
		provider = openaiChat.New(env.OpenAIAPIKey)
	}

	return embedder, provider, nil
}
