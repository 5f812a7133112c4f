package generate

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag/llm"
	"github.com/physai/bookrag/pkg/logger_i"
)

// Generator turns retrieved context plus a question into a grounded
// response. Both modes refuse without touching the model when there is
// nothing to ground on.
type Generator struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func New(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger_i.NewLogger("Generator :"),
	}
}

// AnswerGlobal answers from retrieved passages. An empty passage set
// short-circuits to the refusal with no citations; whenever passages were
// supplied the response lists their distinct sources, refusal or not.
func (g *Generator) AnswerGlobal(ctx context.Context, question string, passages []ragmodel.CandidatePassage, conversationId string) (*ragmodel.Response, error) {
	convId := ensureConversationId(conversationId)

	if len(passages) == 0 {
		g.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Info("No passages retrieved, refusing without generation")
		return &ragmodel.Response{
			Answer:         RefusalMessage,
			Citations:      []ragmodel.Citation{},
			ConversationId: convId,
			Grounded:       false,
		}, nil
	}

	excerpts := make([]string, 0, len(passages))
	for i, p := range passages {
		excerpts = append(excerpts, formatExcerpt(i+1, p.Document, p.Section, p.Text))
	}

	answer, err := g.provider.Complete(ctx, globalSystemInstruction, buildGlobalUserPrompt(question, excerpts))
	if err != nil {
		return nil, err
	}

	return &ragmodel.Response{
		Answer:         answer,
		Citations:      CollectCitations(passages),
		ConversationId: convId,
		Grounded:       false,
	}, nil
}

// AnswerGrounded answers from a single caller-supplied span. Grounded
// answers never carry citations; the caller already holds the source.
func (g *Generator) AnswerGrounded(ctx context.Context, question, selection, conversationId string) (*ragmodel.Response, error) {
	convId := ensureConversationId(conversationId)

	if strings.TrimSpace(selection) == "" {
		return &ragmodel.Response{
			Answer:         RefusalMessage,
			Citations:      []ragmodel.Citation{},
			ConversationId: convId,
			Grounded:       true,
		}, nil
	}

	answer, err := g.provider.Complete(ctx, groundedSystemInstruction, buildGroundedUserPrompt(question, selection))
	if err != nil {
		return nil, err
	}

	return &ragmodel.Response{
		Answer:         answer,
		Citations:      []ragmodel.Citation{},
		ConversationId: convId,
		Grounded:       true,
	}, nil
}

// IsRefusal detects the canonical refusal anywhere in the answer,
// case-insensitively, since models sometimes wrap it in extra prose.
func IsRefusal(answer string) bool {
	return strings.Contains(strings.ToLower(answer), strings.ToLower(RefusalMessage))
}

// CollectCitations deduplicates passages by (document, section), keeping
// first-seen order and the first-seen passage's score.
func CollectCitations(passages []ragmodel.CandidatePassage) []ragmodel.Citation {
	type key struct{ document, section string }
	seen := make(map[key]struct{}, len(passages))

	citations := make([]ragmodel.Citation, 0, len(passages))
	for _, p := range passages {
		k := key{p.Document, p.Section}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		citations = append(citations, ragmodel.Citation{
			Document:       p.Document,
			Section:        p.Section,
			RelevanceScore: p.Score,
		})
	}
	return citations
}

func ensureConversationId(conversationId string) string {
	if conversationId != "" {
		return conversationId
	}
	return uuid.NewString()
}
