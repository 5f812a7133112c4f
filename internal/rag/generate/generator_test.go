package generate

import (
	"context"
	"strings"
	"testing"

	"github.com/physai/bookrag/internal/domain/ragmodel"
)

type mockProvider struct {
	CompleteFunc func(ctx context.Context, system string, user string) (string, error)
	calls        int
}

func (m *mockProvider) Complete(ctx context.Context, system string, user string) (string, error) {
	m.calls++
	return m.CompleteFunc(ctx, system, user)
}

func somePassages() []ragmodel.CandidatePassage {
	return []ragmodel.CandidatePassage{
		{Text: "Force equals mass times acceleration.", Document: "mechanics/newton.md", Section: "Newton's Laws", ChunkIndex: 0, Score: 0.91},
		{Text: "Acceleration is the rate of change of velocity.", Document: "mechanics/newton.md", Section: "Newton's Laws", ChunkIndex: 1, Score: 0.85},
		{Text: "Work is force applied over a distance.", Document: "mechanics/energy.md", Section: "Work and Energy", ChunkIndex: 3, Score: 0.78},
	}
}

func TestAnswerGlobalEmptyPassagesRefusesWithoutLLM(t *testing.T) {
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		t.Fatal("provider must not be called with no passages")
		return "", nil
	}}
	g := New(provider)

	resp, err := g.AnswerGlobal(context.Background(), "What is entropy?", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != RefusalMessage {
		t.Errorf("expected canonical refusal, got %q", resp.Answer)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("refusal must carry no citations, got %d", len(resp.Citations))
	}
	if resp.ConversationId == "" {
		t.Error("expected a generated conversation id")
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestAnswerGlobalCitesDistinctSources(t *testing.T) {
	var gotUser string
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		gotUser = user
		return "Force is mass times acceleration.", nil
	}}
	g := New(provider)

	resp, err := g.AnswerGlobal(context.Background(), "What is force?", somePassages(), "conv-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ConversationId != "conv-7" {
		t.Errorf("conversation id not reused: %q", resp.ConversationId)
	}
	if resp.Grounded {
		t.Error("global mode must report grounded=false")
	}

	// Two passages share (document, section); expect 2 citations, first-seen order.
	if len(resp.Citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(resp.Citations))
	}
	if resp.Citations[0].Document != "mechanics/newton.md" || resp.Citations[0].RelevanceScore != 0.91 {
		t.Errorf("first citation wrong: %+v", resp.Citations[0])
	}
	if resp.Citations[1].Section != "Work and Energy" {
		t.Errorf("second citation wrong: %+v", resp.Citations[1])
	}

	for _, p := range somePassages() {
		if !strings.Contains(gotUser, p.Text) {
			t.Errorf("prompt missing passage text %q", p.Text)
		}
	}
	if !strings.Contains(gotUser, "What is force?") {
		t.Error("prompt missing the question")
	}
}

func TestAnswerGlobalRefusalKeepsSuppliedCitations(t *testing.T) {
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		return "I'm sorry. " + strings.ToUpper(RefusalMessage), nil
	}}
	g := New(provider)

	resp, err := g.AnswerGlobal(context.Background(), "Who won the world cup?", somePassages(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Passages were supplied, so their distinct sources stay on the
	// response even though the model refused.
	if len(resp.Citations) != 2 {
		t.Errorf("expected the 2 distinct supplied sources, got %d citations", len(resp.Citations))
	}
}

func TestGlobalInstructionMandatesInlineCitations(t *testing.T) {
	var gotSystem string
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		gotSystem = system
		return "Force is mass times acceleration.", nil
	}}
	g := New(provider)

	if _, err := g.AnswerGlobal(context.Background(), "What is force?", somePassages(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lower := strings.ToLower(gotSystem)
	if !strings.Contains(lower, "cite") {
		t.Errorf("system instruction carries no citation mandate: %q", gotSystem)
	}
	if !strings.Contains(lower, "section") {
		t.Errorf("system instruction does not point at the excerpt document/section headers: %q", gotSystem)
	}
	if strings.Contains(lower, "do not mention the excerpts") {
		t.Errorf("system instruction forbids referencing sources: %q", gotSystem)
	}
}

func TestAnswerGroundedEmptySelectionRefusesWithoutLLM(t *testing.T) {
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		t.Fatal("provider must not be called with an empty selection")
		return "", nil
	}}
	g := New(provider)

	resp, err := g.AnswerGrounded(context.Background(), "What does this mean?", "   \n", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != RefusalMessage {
		t.Errorf("expected canonical refusal, got %q", resp.Answer)
	}
	if !resp.Grounded {
		t.Error("grounded mode must report grounded=true")
	}
}

func TestAnswerGroundedNeverCites(t *testing.T) {
	provider := &mockProvider{CompleteFunc: func(ctx context.Context, system, user string) (string, error) {
		if !strings.Contains(user, "momentum is conserved") {
			t.Errorf("prompt missing the selection: %q", user)
		}
		return "It means total momentum stays constant.", nil
	}}
	g := New(provider)

	resp, err := g.AnswerGrounded(context.Background(), "What does this mean?", "In a closed system momentum is conserved.", "conv-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Citations) != 0 {
		t.Errorf("grounded answers must carry no citations, got %d", len(resp.Citations))
	}
	if resp.ConversationId != "conv-9" {
		t.Errorf("conversation id not reused: %q", resp.ConversationId)
	}
}

func TestIsRefusal(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{RefusalMessage, true},
		{strings.ToUpper(RefusalMessage), true},
		{"Well, " + RefusalMessage + " Sorry!", true},
		{"Force equals mass times acceleration.", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsRefusal(c.answer); got != c.want {
			t.Errorf("IsRefusal(%q) = %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestCollectCitationsDedup(t *testing.T) {
	citations := CollectCitations(somePassages())
	if len(citations) != 2 {
		t.Fatalf("expected 2 citations, got %d", len(citations))
	}
	// The duplicate keeps the first-seen score, not the later one.
	if citations[0].RelevanceScore != 0.91 {
		t.Errorf("expected first-seen score 0.91, got %v", citations[0].RelevanceScore)
	}
	if len(CollectCitations(nil)) != 0 {
		t.Error("nil passages must yield no citations")
	}
}
