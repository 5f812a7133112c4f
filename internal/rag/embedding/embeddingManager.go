package embedding

import "context"

// Embedder produces vectors for one model. The same implementation serves
// index time and query time so stored and query vectors always come from
// the same model.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() uint64
}
