package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/mcpadapter"
	"github.com/physai/bookrag/internal/rag"
	"github.com/physai/bookrag/internal/rag/chunker"
	"github.com/physai/bookrag/internal/rag/embedding"
	"github.com/physai/bookrag/internal/rag/embedding/googleEmbedding"
	"github.com/physai/bookrag/internal/rag/embedding/openaiEmbedding"
	"github.com/physai/bookrag/internal/rag/llm"
	"github.com/physai/bookrag/internal/rag/llm/gemini"
	"github.com/physai/bookrag/internal/rag/llm/openaiChat"
	"github.com/physai/bookrag/internal/rag/vectorDB/qdrantDB"
	"github.com/physai/bookrag/pkg/logger_i"
)

func main() {
	//stdout belongs to the MCP transport
	logger_i.InitTo(os.Stderr)
	logger := logger_i.NewLogger("mcp")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Error("Bad configuration", "error", err)
		os.Exit(1)
	}

	ragService, closeServices, err := wire(ctx, env)
	if err != nil {
		logger.Error("Unable to load dependencies", "error", err)
		os.Exit(1)
	}
	defer closeServices()

	server := createMCPServer(ragService)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		//EOF is expected when the client closes stdin
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug("MCP server stopped", "error", err)
			return
		}
		logger.Error("Failed to run mcp server", "error", err)
		os.Exit(1)
	}
}

func createMCPServer(service rag.Service) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bookrag",
			Version: "1.0.0",
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_book",
		Description: "Answer a question from the indexed textbook with citations. Refuses questions the book does not cover.",
	}, mcpadapter.NewAskBookHandler(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_selection",
		Description: "Answer a question using only a caller-supplied passage from the book.",
	}, mcpadapter.NewAskSelectionHandler(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_book",
		Description: "Retrieve the most relevant book passages for a query without generating an answer.",
	}, mcpadapter.NewSearchBookHandler(service))

	return server
}

func wire(ctx context.Context, env *config.Env) (rag.Service, func(), error) {
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

	vectorStore, err := qdrantDB.New(ctx, qdrantDB.Config{
		Host:       env.QdrantHost,
		Port:       env.QdrantPort,
		VectorSize: embedder.Dimension(),
	})
	if err != nil {
		return nil, nil, err
	}

	textChunker, err := chunker.New(config.ChunkSizeTokens, config.ChunkOverlapTokens)
	if err != nil {
		vectorStore.Close()
		return nil, nil, err
	}

	service := rag.NewService(vectorStore, provider, embedder, textChunker)
	return service, func() { vectorStore.Close() }, nil
}
