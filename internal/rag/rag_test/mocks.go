package rag_test

import (
	"context"

	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.Store
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearch             func(ctx context.Context, vector []float32, limit uint64, threshold float32) ([]ragmodel.CandidatePassage, error)
	OnGetCachedAnswer    func(ctx context.Context, queryVector []float32) (*ragmodel.Response, bool, error)
	OnSaveToCache        func(ctx context.Context, id string, vector []float32, response *ragmodel.Response) error
	OnEnsureCollection   func(ctx context.Context) error
	OnRecreateCollection func(ctx context.Context) error
	OnUpsertBatch        func(ctx context.Context, points []vectorDB.Point) error
	OnCollectionStats    func(ctx context.Context) (vectorDB.Stats, error)
}

func (m *MockVectorDB) Search(ctx context.Context, v []float32, limit uint64, threshold float32) ([]ragmodel.CandidatePassage, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, v, limit, threshold)
	}
	return []ragmodel.CandidatePassage{
		{Text: "default passage", Document: "intro.md", Section: "Introduction", Score: 0.9},
	}, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (*ragmodel.Response, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return nil, false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, r *ragmodel.Response) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, r)
	}
	return nil
}

func (m *MockVectorDB) EnsureCollection(ctx context.Context) error {
	if m.OnEnsureCollection != nil {
		return m.OnEnsureCollection(ctx)
	}
	return nil
}

func (m *MockVectorDB) RecreateCollection(ctx context.Context) error {
	if m.OnRecreateCollection != nil {
		return m.OnRecreateCollection(ctx)
	}
	return nil
}

func (m *MockVectorDB) UpsertBatch(ctx context.Context, points []vectorDB.Point) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, points)
	}
	return nil
}

func (m *MockVectorDB) CollectionStats(ctx context.Context) (vectorDB.Stats, error) {
	if m.OnCollectionStats != nil {
		return m.OnCollectionStats(ctx)
	}
	return vectorDB.Stats{CollectionName: "book-chapters", PointsCount: 42, VectorSize: 4}, nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1, 0.2, 0.3, 0.4}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching input size
	return make([][]float32, len(texts)), nil
}

func (m *MockEmbedder) Dimension() uint64 { return 4 }

// MockLLM implements llm.Provider
type MockLLM struct {
	OnComplete func(ctx context.Context, system string, user string) (string, error)
}

func (m *MockLLM) Complete(ctx context.Context, system string, user string) (string, error) {
	if m.OnComplete != nil {
		return m.OnComplete(ctx, system, user)
	}
	return "mocked llm response", nil
}
