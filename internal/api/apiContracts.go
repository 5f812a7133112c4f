package api

import "time"

// requests---------------------

type ChatRequest struct {
	Question       string `json:"question" validate:"required" example:"What is Newton's second law?"`
	ConversationId string `json:"conversation_id,omitempty" example:"conv_550"`
}

type GroundedChatRequest struct {
	Question       string `json:"question" validate:"required" example:"What does this passage mean?"`
	SelectedText   string `json:"selected_text" example:"In a closed system momentum is conserved."`
	ConversationId string `json:"conversation_id,omitempty"`
}

type IndexRequest struct {
	ForceReindex bool `json:"force_reindex" example:"false"`
}

// responses--------------------

type Citation struct {
	Document       string  `json:"document" example:"mechanics/newton.md"`
	Section        string  `json:"section" example:"Newton's Laws"`
	RelevanceScore float32 `json:"relevance_score" example:"0.87"`
}

type ChatResponse struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	ConversationId string     `json:"conversation_id"`
	Grounded       bool       `json:"grounded"`
}

type IndexAccepted struct {
	RunId     string `json:"run_id"`
	StatusURL string `json:"status_url"`
}

type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type IndexStatusResponse struct {
	RunId          string        `json:"run_id"`
	Status         string        `json:"status" example:"completed"`
	FilesProcessed int           `json:"files_processed"`
	ChunksCreated  int           `json:"chunks_created"`
	Failures       []FileFailure `json:"failures,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     time.Time     `json:"finished_at,omitzero"`
	Error          string        `json:"error,omitempty"`
}

type HealthResponse struct {
	Status         string `json:"status" example:"ok"`
	CollectionName string `json:"collection_name"`
	PointsCount    uint64 `json:"points_count"`
	VectorSize     uint64 `json:"vector_size"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"question must not be empty"`
}
