package ragmodel

import "time"

// Chunk is one token-bounded slice of a source document, ready for
// embedding and upsert.
type Chunk struct {
	Document   string `json:"document"` //corpus-relative path of the source file
	Index      int    `json:"index"`    //0-based position within the document
	Text       string `json:"text"`
	TokenCount int    `json:"tokenCount"`
	Title      string `json:"title"`
	Category   string `json:"category"`
}

// CandidatePassage is a retrieval hit: chunk payload plus its similarity
// score, ordered best-first by the store.
type CandidatePassage struct {
	Text       string  `json:"text"`
	Document   string  `json:"document"`
	Section    string  `json:"section"`
	Category   string  `json:"category"`
	ChunkIndex int     `json:"chunkIndex"`
	Score      float32 `json:"score"`
}

// Citation points at a source passage backing an answer. Deduplicated by
// (Document, Section); RelevanceScore is the first-seen passage's score.
type Citation struct {
	Document       string  `json:"document"`
	Section        string  `json:"section"`
	RelevanceScore float32 `json:"relevanceScore"`
}

type Response struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	ConversationId string     `json:"conversationId"`
	Grounded       bool       `json:"grounded"`
}

// FileFailure records one document the indexing run skipped.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// IndexResult is the persisted record of one indexing run.
type IndexResult struct {
	RunId          string        `json:"runId"`
	Status         RunStatus     `json:"status"`
	FilesProcessed int           `json:"filesProcessed"`
	ChunksCreated  int           `json:"chunksCreated"`
	Failures       []FileFailure `json:"failures,omitempty"`
	StartedAt      time.Time     `json:"startedAt"`
	FinishedAt     time.Time     `json:"finishedAt,omitzero"`
	Error          string        `json:"error,omitempty"`
}
