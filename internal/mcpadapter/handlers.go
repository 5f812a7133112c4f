package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag"
)

// AskBookInput is the MCP tool input schema for corpus-wide questions.
type AskBookInput struct {
	Question       string `json:"question" jsonschema:"question to answer from the textbook"`
	ConversationId string `json:"conversation_id,omitempty" jsonschema:"optional conversation identifier"`
}

// AskSelectionInput is the MCP tool input schema for passage-scoped questions.
type AskSelectionInput struct {
	Question     string `json:"question" jsonschema:"question about the selected passage"`
	SelectedText string `json:"selected_text" jsonschema:"passage the answer must stay within"`
}

// SearchBookInput is the MCP tool input schema for raw retrieval.
type SearchBookInput struct {
	Query string `json:"query" jsonschema:"text to search the textbook for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of passages to return (default 5)"`
}

type AnswerOutput struct {
	Answer    string       `json:"answer"`
	Citations []CitationDT `json:"citations"`
	Grounded  bool         `json:"grounded"`
}

type CitationDT struct {
	Document       string  `json:"document"`
	Section        string  `json:"section"`
	RelevanceScore float32 `json:"relevance_score"`
}

type PassageDT struct {
	Text       string  `json:"text"`
	Document   string  `json:"document"`
	Section    string  `json:"section"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float32 `json:"score"`
}

type SearchOutput struct {
	Passages []PassageDT `json:"passages"`
}

func toAnswerOutput(response *ragmodel.Response) AnswerOutput {
	out := AnswerOutput{
		Answer:    response.Answer,
		Citations: make([]CitationDT, 0, len(response.Citations)),
		Grounded:  response.Grounded,
	}
	for _, c := range response.Citations {
		out.Citations = append(out.Citations, CitationDT{
			Document:       c.Document,
			Section:        c.Section,
			RelevanceScore: c.RelevanceScore,
		})
	}
	return out
}

// NewAskBookHandler returns a tool handler backed by the given service.
// Pass the returned function to mcp.AddTool.
func NewAskBookHandler(service rag.Service) func(context.Context, *mcp.CallToolRequest, AskBookInput) (*mcp.CallToolResult, AnswerOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskBookInput) (*mcp.CallToolResult, AnswerOutput, error) {
		response, err := service.QueryGlobal(ctx, rag.GlobalQuery{
			Question:       input.Question,
			ConversationId: input.ConversationId,
		})
		if err != nil {
			return nil, AnswerOutput{}, err
		}
		return nil, toAnswerOutput(response), nil
	}
}

// NewAskSelectionHandler returns a tool handler for passage-scoped questions.
// Pass the returned function to mcp.AddTool.
func NewAskSelectionHandler(service rag.Service) func(context.Context, *mcp.CallToolRequest, AskSelectionInput) (*mcp.CallToolResult, AnswerOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskSelectionInput) (*mcp.CallToolResult, AnswerOutput, error) {
		response, err := service.QueryGrounded(ctx, rag.GroundedQuery{
			Question:     input.Question,
			SelectedText: input.SelectedText,
		})
		if err != nil {
			return nil, AnswerOutput{}, err
		}
		return nil, toAnswerOutput(response), nil
	}
}

// NewSearchBookHandler returns a tool handler that exposes raw retrieval,
// no generation step.
func NewSearchBookHandler(service rag.Service) func(context.Context, *mcp.CallToolRequest, SearchBookInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchBookInput) (*mcp.CallToolResult, SearchOutput, error) {
		k := input.TopK
		if k <= 0 {
			k = config.TopKResults
		}
		passages, err := service.Retrieve(ctx, input.Query, k, config.SimilarityThreshold)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		out := SearchOutput{Passages: make([]PassageDT, 0, len(passages))}
		for _, p := range passages {
			out.Passages = append(out.Passages, PassageDT{
				Text:       p.Text,
				Document:   p.Document,
				Section:    p.Section,
				ChunkIndex: p.ChunkIndex,
				Score:      p.Score,
			})
		}
		return nil, out, nil
	}
}
