package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func mustChunker(t *testing.T, size, overlap int) *Chunker {
	t.Helper()
	c, err := New(size, overlap)
	if err != nil {
		t.Fatalf("New(%d, %d) failed: %v", size, overlap, err)
	}
	return c
}

func TestChunkEmptyInput(t *testing.T) {
	c := mustChunker(t, 512, 64)

	for _, input := range []string{"", "   ", "\n\n\t  \n"} {
		if got := c.Chunk(input); len(got) != 0 {
			t.Errorf("Chunk(%q) = %d chunks, want 0", input, len(got))
		}
	}
}

func TestChunkShortTextPassesThrough(t *testing.T) {
	c := mustChunker(t, 512, 64)

	input := "Energy is conserved in a closed system."
	got := c.Chunk(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got))
	}
	if got[0] != input {
		t.Errorf("short text was altered: %q", got[0])
	}
}

func TestChunkRespectsSizeBudget(t *testing.T) {
	c := mustChunker(t, 40, 0)

	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "Paragraph %d talks about momentum and force in some detail.\n\n", i)
	}

	chunks := c.Chunk(b.String())
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := c.CountTokens(chunk); n > 40 {
			t.Errorf("chunk %d has %d tokens, budget is 40", i, n)
		}
	}
}

func TestChunkBudgetHoldsOnJoinedBuffers(t *testing.T) {
	// Mixed punctuation and unusual token boundaries, where per-part
	// token counts diverge most from the count of the joined text.
	input := "E=mc^2 relates mass-energy! Doesn't v=d/t hold? F_net = m*a, always. " +
		"Entropy (S) never decreases... dS >= 0. Q: heat; W: work; U: internal energy. " +
		"The 2nd law: no engine is 100% efficient. T_hot - T_cold drives the cycle. " +
		"P*V = n*R*T for ideal gases. lambda*f = c for waves. omega = 2*pi*f too."

	for _, budget := range []int{12, 20, 35} {
		c := mustChunker(t, budget, 0)
		for i, chunk := range c.Chunk(input) {
			if n := c.CountTokens(chunk); n > budget {
				t.Errorf("budget %d: chunk %d has %d tokens: %q", budget, i, n, chunk)
			}
		}
	}
}

func TestChunkDeterministic(t *testing.T) {
	c := mustChunker(t, 30, 8)

	input := "The first law. The second law of motion is longer. A third sentence about inertia closes the paragraph.\n\nAnother paragraph follows with more words about acceleration and mass."
	first := c.Chunk(input)
	second := c.Chunk(input)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkOverlapPrepended(t *testing.T) {
	input := "One short sentence here. Another sentence follows it closely. A third sentence keeps the text going. A fourth sentence adds more tokens. A fifth sentence finishes the block."

	plain := mustChunker(t, 20, 0).Chunk(input)
	overlapped := mustChunker(t, 20, 6).Chunk(input)

	if len(plain) != len(overlapped) {
		t.Fatalf("overlap changed chunk count: %d vs %d", len(plain), len(overlapped))
	}
	if len(plain) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(plain))
	}

	if overlapped[0] != plain[0] {
		t.Errorf("first chunk must not carry overlap: %q", overlapped[0])
	}
	for i := 1; i < len(plain); i++ {
		if !strings.HasSuffix(overlapped[i], plain[i]) {
			t.Errorf("chunk %d lost its own text under overlap", i)
		}
		if len(overlapped[i]) <= len(plain[i]) {
			t.Errorf("chunk %d has no prepended overlap", i)
		}
	}
}

func TestChunkOversizedIndivisibleUnit(t *testing.T) {
	c := mustChunker(t, 10, 0)

	token := strings.Repeat("x", 400)
	chunks := c.Chunk(token)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 oversized chunk, got %d", len(chunks))
	}
	if chunks[0] != token {
		t.Errorf("indivisible unit was mangled")
	}
}

func TestChunkSentenceFallback(t *testing.T) {
	// One paragraph, several sentences, budget too small for the paragraph.
	input := "Velocity is a vector. Speed is its magnitude. Displacement differs from distance. Acceleration changes velocity over time."

	c := mustChunker(t, 15, 0)
	chunks := c.Chunk(input)
	if len(chunks) < 2 {
		t.Fatalf("expected sentence-level split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if n := c.CountTokens(chunk); n > 15 {
			t.Errorf("chunk %d has %d tokens, budget is 15", i, n)
		}
	}
}

func TestChunkDocumentMetadata(t *testing.T) {
	c := mustChunker(t, 25, 4)

	text := "Waves carry energy without carrying matter. Frequency counts oscillations per second. Wavelength measures one full cycle in space. Amplitude sets the wave's intensity."
	chunks := c.ChunkDocument("mechanics/waves.md", "Waves", "mechanics", text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.Index != i {
			t.Errorf("chunk %d has index %d", i, ch.Index)
		}
		if ch.Document != "mechanics/waves.md" || ch.Title != "Waves" || ch.Category != "mechanics" {
			t.Errorf("chunk %d metadata wrong: %+v", i, ch)
		}
		if ch.TokenCount != c.CountTokens(ch.Text) {
			t.Errorf("chunk %d token count %d does not match text", i, ch.TokenCount)
		}
	}
}

func TestNewRejectsBadBudgets(t *testing.T) {
	if _, err := New(0, 0); err == nil {
		t.Error("expected error for zero size budget")
	}
	if _, err := New(100, 100); err == nil {
		t.Error("expected error for overlap >= size")
	}
	if _, err := New(100, -1); err == nil {
		t.Error("expected error for negative overlap")
	}
}
