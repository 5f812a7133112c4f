package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Provider names accepted by LLM_PROVIDER / EMBEDDING_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Env holds everything resolved from the environment at startup. Both
// binaries build exactly one of these and hand it down; nothing else reads
// os.Getenv.
type Env struct {
	OpenAIAPIKey string
	GoogleAPIKey string

	LLMProvider       string
	EmbeddingProvider string

	QdrantHost string
	QdrantPort int

	RedisAddr     string
	RedisPassword string

	CorpusPath string

	AuthToken    string
	NoAuthBypass bool
}

// LoadEnv reads .env if present, then the process environment. It fails on
// an unknown provider name or a missing credential for the selected
// provider so misconfiguration surfaces at startup, not on the first call.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	e := &Env{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		LLMProvider:       getEnvDefault("LLM_PROVIDER", ProviderOpenAI),
		EmbeddingProvider: getEnvDefault("EMBEDDING_PROVIDER", ProviderOpenAI),
		QdrantHost:        getEnvDefault("QDRANT_HOST", "localhost"),
		RedisAddr:         getEnvDefault("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		CorpusPath:        getEnvDefault("CORPUS_PATH", "./corpus"),
		AuthToken:         os.Getenv("AUTH_TOKEN"),
		NoAuthBypass:      os.Getenv("NO_AUTH_BYPASS") == "true",
	}

	port := getEnvDefault("QDRANT_PORT", strconv.Itoa(QdrantGrpcPort))
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid QDRANT_PORT %q: %w", port, err)
	}
	e.QdrantPort = p

	for _, provider := range []string{e.LLMProvider, e.EmbeddingProvider} {
		switch provider {
		case ProviderOpenAI:
			if e.OpenAIAPIKey == "" {
				return nil, fmt.Errorf("provider %q selected but OPENAI_API_KEY is empty", provider)
			}
		case ProviderGoogle:
			if e.GoogleAPIKey == "" {
				return nil, fmt.Errorf("provider %q selected but GOOGLE_API_KEY is empty", provider)
			}
		default:
			return nil, fmt.Errorf("unknown provider %q (want %q or %q)", provider, ProviderOpenAI, ProviderGoogle)
		}
	}

	return e, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
