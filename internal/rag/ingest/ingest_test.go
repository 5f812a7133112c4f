package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/chunker"
	"github.com/physai/bookrag/internal/rag/vectorDB"
)

// --- Mocks ---

type mockEmbedder struct {
	batchFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0}, nil
}
func (m *mockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, texts)
	}
	return make([][]float32, len(texts)), nil
}
func (m *mockEmbedder) Dimension() uint64 { return 4 }

type mockStore struct {
	ensureCalls   int
	recreateCalls int
	upsertFunc    func(ctx context.Context, points []vectorDB.Point) error
	upserted      [][]vectorDB.Point
}

func (m *mockStore) Search(ctx context.Context, v []float32, limit uint64, threshold float32) ([]ragmodel.CandidatePassage, error) {
	return nil, nil
}
func (m *mockStore) GetCachedAnswer(ctx context.Context, v []float32) (*ragmodel.Response, bool, error) {
	return nil, false, nil
}
func (m *mockStore) SaveToCache(ctx context.Context, id string, v []float32, r *ragmodel.Response) error {
	return nil
}
func (m *mockStore) EnsureCollection(ctx context.Context) error {
	m.ensureCalls++
	return nil
}
func (m *mockStore) RecreateCollection(ctx context.Context) error {
	m.recreateCalls++
	return nil
}
func (m *mockStore) UpsertBatch(ctx context.Context, points []vectorDB.Point) error {
	if m.upsertFunc != nil {
		if err := m.upsertFunc(ctx, points); err != nil {
			return err
		}
	}
	batch := make([]vectorDB.Point, len(points))
	copy(batch, points)
	m.upserted = append(m.upserted, batch)
	return nil
}
func (m *mockStore) CollectionStats(ctx context.Context) (vectorDB.Stats, error) {
	return vectorDB.Stats{}, nil
}

func testPipeline(t *testing.T, store *mockStore, embedder *mockEmbedder) *Pipeline {
	t.Helper()
	ch, err := chunker.New(64, 8)
	if err != nil {
		t.Fatalf("chunker.New failed: %v", err)
	}
	return NewPipeline(ch, embedder, store)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- Tests ---

func TestDiscoverFilesSkipsHiddenAndUnsupported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mechanics/forces.md", "# Forces")
	writeFile(t, root, "mechanics/notes.txt", "plain notes")
	writeFile(t, root, "mechanics/.draft.md", "hidden")
	writeFile(t, root, "_templates/chapter.md", "template")
	writeFile(t, root, "node_modules/pkg/readme.md", "vendored")
	writeFile(t, root, "assets/diagram.png", "binary")

	files, err := discoverFiles(root)
	if err != nil {
		t.Fatalf("discoverFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		rel      string
		expected string
	}{
		{"mechanics/forces.md", "mechanics"},
		{"optics/lenses/thin.md", "optics"},
		{"intro.md", "general"},
	}
	for _, tt := range tests {
		if got := categoryOf(tt.rel); got != tt.expected {
			t.Errorf("categoryOf(%s) = %v; want %v", tt.rel, got, tt.expected)
		}
	}
}

func TestPointIdDeterministic(t *testing.T) {
	a := PointId("mechanics/forces.md", 0)
	b := PointId("mechanics/forces.md", 0)
	if a != b {
		t.Errorf("same identity produced different ids: %s vs %s", a, b)
	}
	if PointId("mechanics/forces.md", 1) == a {
		t.Error("different chunk index must produce a different id")
	}
	if PointId("optics/lenses.md", 0) == a {
		t.Error("different document must produce a different id")
	}
}

func TestRunIndexesCorpus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mechanics/forces.md", "---\ntitle: Forces\n---\n# Forces\n\nA force changes the motion of a body.")
	writeFile(t, root, "optics/lenses.md", "# Lenses\n\nA lens refracts light to form an image.")

	store := &mockStore{}
	p := testPipeline(t, store, &mockEmbedder{})

	result := p.Run(context.Background(), "run-1", root, false)

	if result.Status != ragmodel.RunCompleted {
		t.Fatalf("expected completed run, got %s (%s)", result.Status, result.Error)
	}
	if result.FilesProcessed != 2 {
		t.Errorf("expected 2 files processed, got %d", result.FilesProcessed)
	}
	if result.ChunksCreated == 0 {
		t.Error("expected chunks to be created")
	}
	if len(result.Failures) != 0 {
		t.Errorf("unexpected failures: %+v", result.Failures)
	}
	if store.ensureCalls != 1 || store.recreateCalls != 0 {
		t.Errorf("normal run must ensure, not recreate: ensure=%d recreate=%d", store.ensureCalls, store.recreateCalls)
	}

	var points []vectorDB.Point
	for _, batch := range store.upserted {
		points = append(points, batch...)
	}
	if len(points) != result.ChunksCreated {
		t.Fatalf("upserted %d points for %d chunks", len(points), result.ChunksCreated)
	}
	for _, pt := range points {
		if pt.Id != PointId(pt.Chunk.Document, pt.Chunk.Index) {
			t.Errorf("point id not derived from chunk identity: %+v", pt.Chunk)
		}
	}
}

func TestRunForceReindexRecreatesCollection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "intro.md", "# Intro\n\nSome text.")

	store := &mockStore{}
	p := testPipeline(t, store, &mockEmbedder{})

	result := p.Run(context.Background(), "run-2", root, true)
	if result.Status != ragmodel.RunCompleted {
		t.Fatalf("expected completed run, got %s (%s)", result.Status, result.Error)
	}
	if store.recreateCalls != 1 || store.ensureCalls != 0 {
		t.Errorf("force run must recreate: ensure=%d recreate=%d", store.ensureCalls, store.recreateCalls)
	}
}

func TestRunSkipsFailingDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.md", "# Good\n\nThis one embeds fine.")
	writeFile(t, root, "poison.md", "# Poison\n\nThis one fails to embed.")

	embedder := &mockEmbedder{batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
		for _, text := range texts {
			if strings.Contains(text, "Poison") {
				return nil, errors.New("embedding exploded")
			}
		}
		return make([][]float32, len(texts)), nil
	}}
	store := &mockStore{}
	p := testPipeline(t, store, embedder)

	result := p.Run(context.Background(), "run-3", root, false)

	if result.Status != ragmodel.RunCompleted {
		t.Fatalf("run must complete despite a bad document, got %s (%s)", result.Status, result.Error)
	}
	if result.FilesProcessed != 1 {
		t.Errorf("expected 1 file processed, got %d", result.FilesProcessed)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(result.Failures))
	}
	if filepath.Base(result.Failures[0].Path) != "poison.md" {
		t.Errorf("wrong failure recorded: %+v", result.Failures[0])
	}
}

func TestRunUpsertFailureFailsRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "intro.md", "# Intro\n\nSome text.")

	store := &mockStore{upsertFunc: func(ctx context.Context, points []vectorDB.Point) error {
		return errors.New("qdrant down")
	}}
	p := testPipeline(t, store, &mockEmbedder{})

	result := p.Run(context.Background(), "run-4", root, false)
	if result.Status != ragmodel.RunFailed {
		t.Fatalf("expected failed run, got %s", result.Status)
	}
	if result.Error == "" {
		t.Error("failed run must carry the error")
	}
}

func TestRunEmptyCorpusCompletes(t *testing.T) {
	store := &mockStore{}
	p := testPipeline(t, store, &mockEmbedder{})

	result := p.Run(context.Background(), "run-5", t.TempDir(), false)
	if result.Status != ragmodel.RunCompleted {
		t.Fatalf("expected completed run, got %s (%s)", result.Status, result.Error)
	}
	if result.FilesProcessed != 0 || result.ChunksCreated != 0 {
		t.Errorf("expected empty summary, got %+v", result)
	}
}
