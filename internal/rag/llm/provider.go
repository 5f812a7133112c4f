package llm

import "context"

// Provider is a single-turn completion. The caller owns all prompt
// assembly; implementations only carry the transport.
type Provider interface {
	Complete(ctx context.Context, systemInstruction string, userMessage string) (string, error)
}
