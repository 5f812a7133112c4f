package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/pkg/logger_i"
)

// Splitting granularities, coarsest first. A unit that still exceeds the
// budget at the last level is emitted oversized and logged.
const (
	levelParagraph = iota
	levelSentence
	levelWord
	levelCount
)

var sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// Chunker splits text into token-bounded chunks: paragraphs first, then
// sentences, then word runs, with a token-level overlap carried from each
// chunk into the next. Same input, same output.
type Chunker struct {
	enc     *tiktoken.Tiktoken
	size    int
	overlap int
	logger  *logger_i.Logger
}

func New(sizeBudget, overlapBudget int) (*Chunker, error) {
	if sizeBudget <= 0 {
		return nil, fmt.Errorf("size budget must be positive, got %d", sizeBudget)
	}
	if overlapBudget < 0 || overlapBudget >= sizeBudget {
		return nil, fmt.Errorf("overlap budget %d must be in [0, %d)", overlapBudget, sizeBudget)
	}
	// Bundled BPE data, no network fetch on first use.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	enc, err := tiktoken.GetEncoding(config.TokenEncoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", config.TokenEncoding, err)
	}
	return &Chunker{
		enc:     enc,
		size:    sizeBudget,
		overlap: overlapBudget,
		logger:  logger_i.NewLogger("Chunker :"),
	}, nil
}

func (c *Chunker) CountTokens(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// Chunk splits text into pieces of at most the size budget, then prepends
// the last overlap tokens of each chunk to its successor.
func (c *Chunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.applyOverlap(c.split(text, levelParagraph))
}

// ChunkDocument runs Chunk and wraps the pieces with document metadata.
// TokenCount reflects the final text, overlap included.
func (c *Chunker) ChunkDocument(document, title, category, text string) []ragmodel.Chunk {
	pieces := c.Chunk(text)
	chunks := make([]ragmodel.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, ragmodel.Chunk{
			Document:   document,
			Index:      i,
			Text:       piece,
			TokenCount: c.CountTokens(piece),
			Title:      title,
			Category:   category,
		})
	}
	return chunks
}

func (c *Chunker) split(text string, level int) []string {
	if c.CountTokens(text) <= c.size {
		return []string{text}
	}
	if level >= levelCount {
		c.logger.Warn("indivisible unit over the size budget, emitting oversized",
			"tokens", c.CountTokens(text), "budget", c.size)
		return []string{text}
	}

	parts, sep := splitAtLevel(text, level)

	var chunks []string
	current := ""

	flush := func() {
		if strings.TrimSpace(current) != "" {
			chunks = append(chunks, current)
		}
		current = ""
	}

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}

		// Too big for any chunk at this level: descend a level.
		if c.CountTokens(part) > c.size {
			flush()
			chunks = append(chunks, c.split(part, level+1)...)
			continue
		}

		// Token counts are not additive across a join, so the joined
		// buffer is recounted whole before deciding to flush.
		joined := part
		if current != "" {
			joined = current + sep + part
		}
		if c.CountTokens(joined) > c.size {
			flush()
			joined = part
		}
		current = joined
	}
	flush()

	return chunks
}

func splitAtLevel(text string, level int) (parts []string, sep string) {
	switch level {
	case levelParagraph:
		return strings.Split(text, "\n\n"), "\n\n"
	case levelSentence:
		return splitSentences(text), " "
	default:
		return strings.Fields(text), " "
	}
}

// splitSentences cuts after terminal punctuation. Text with no terminator
// comes back whole so the caller falls through to word splitting.
func splitSentences(text string) []string {
	matches := sentencePattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}
	sentences := make([]string, 0, len(matches)+1)
	last := 0
	for _, m := range matches {
		sentences = append(sentences, strings.TrimSpace(text[m[0]:m[1]]))
		last = m[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// applyOverlap prepends the trailing overlap tokens of chunk i-1 onto
// chunk i. The first chunk is returned untouched.
func (c *Chunker) applyOverlap(chunks []string) []string {
	if c.overlap == 0 || len(chunks) < 2 {
		return chunks
	}
	out := make([]string, len(chunks))
	out[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := c.enc.Encode(chunks[i-1], nil, nil)
		if len(prev) > c.overlap {
			prev = prev[len(prev)-c.overlap:]
		}
		tail := strings.TrimSpace(c.enc.Decode(prev))
		if tail == "" {
			out[i] = chunks[i]
			continue
		}
		out[i] = tail + " " + chunks[i]
	}
	return out
}
