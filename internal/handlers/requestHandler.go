package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/physai/bookrag/internal/adapter"
	"github.com/physai/bookrag/internal/adapter/utils"
	"github.com/physai/bookrag/internal/api"
	"github.com/physai/bookrag/internal/config"
	"github.com/physai/bookrag/internal/data/store"
	"github.com/physai/bookrag/internal/domain/ragmodel"
	"github.com/physai/bookrag/internal/rag"
	"github.com/physai/bookrag/pkg/logger_i"
)

type Handler struct {
	rag        rag.Service
	runs       store.RunStore
	corpusRoot string
	logger     *logger_i.Logger
}

func NewHandler(service rag.Service, runs store.RunStore, corpusRoot string) *Handler {
	return &Handler{
		rag:        service,
		runs:       runs,
		corpusRoot: corpusRoot,
		logger:     logger_i.NewLogger("handlers"),
	}
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Chat godoc
// @Summary      Ask a question over the whole book
// @Description  Retrieves the most relevant chapters and answers from them, with citations. Out-of-scope questions get the canonical refusal.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest   true  "Question and optional conversation ID"
// @Success      200      {object}  api.ChatResponse  "Grounded answer"
// @Failure      400      {object}  api.ErrorResponse "Invalid question"
// @Failure      503      {object}  api.ErrorResponse "A backing service is unavailable"
// @Router       /chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var requestData api.ChatRequest
	if !decodeBody(w, r, &requestData, log) {
		return
	}

	response, err := h.rag.QueryGlobal(r.Context(), rag.GlobalQuery{
		Question:       requestData.Question,
		ConversationId: requestData.ConversationId,
	})
	if err != nil {
		h.writeServiceError(w, log, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(response))
}

// GroundedChat godoc
// @Summary      Ask about a selected passage
// @Description  Answers strictly from the caller-supplied selection; no retrieval, no citations.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.GroundedChatRequest  true  "Question and selected passage"
// @Success      200      {object}  api.ChatResponse         "Grounded answer"
// @Failure      400      {object}  api.ErrorResponse        "Invalid question or selection"
// @Failure      503      {object}  api.ErrorResponse        "A backing service is unavailable"
// @Router       /chat/grounded [post]
func (h *Handler) GroundedChat(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	var requestData api.GroundedChatRequest
	if !decodeBody(w, r, &requestData, log) {
		return
	}

	response, err := h.rag.QueryGrounded(r.Context(), rag.GroundedQuery{
		Question:       requestData.Question,
		SelectedText:   requestData.SelectedText,
		ConversationId: requestData.ConversationId,
	})
	if err != nil {
		h.writeServiceError(w, log, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(response))
}

// Index godoc
// @Summary      Start an indexing run
// @Description  Walks the corpus directory and (re)builds the vector collection in the background. Only one run at a time.
// @Tags         Indexing
// @Accept       json
// @Produce      json
// @Param        request  body      api.IndexRequest   false  "Set force_reindex to drop and rebuild the collection"
// @Success      202      {object}  api.IndexAccepted  "Run accepted"
// @Failure      409      {object}  api.ErrorResponse  "Another run is in flight"
// @Router       /index [post]
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	// Empty body means a default run
	var requestData api.IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil && !errors.Is(err, io.EOF) {
		log.Warn("Bad index request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	runId := utils.GetNewUUID()
	locked, err := h.runs.TryLockRun(r.Context(), runId)
	if err != nil {
		log.Error("Run lock unavailable", "error", err)
		WriteErrorResponse(w, http.StatusServiceUnavailable, "indexing temporarily unavailable")
		return
	}
	if !locked {
		WriteErrorResponse(w, http.StatusConflict, "an indexing run is already in progress")
		return
	}

	pending := ragmodel.IndexResult{
		RunId:     runId,
		Status:    ragmodel.RunPending,
		StartedAt: time.Now(),
	}
	if err := h.runs.SaveRun(r.Context(), pending); err != nil {
		log.Error("Could not persist run record", "error", err)
	}

	traceId := r.Context().Value(config.TRACE_ID_KEY)
	force := requestData.ForceReindex
	go func() {
		runCtx := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
		defer func() {
			if err := h.runs.UnlockRun(runCtx); err != nil {
				log.Error("Could not release run lock", "runId", runId, "error", err)
			}
		}()

		result := h.rag.IndexCorpus(runCtx, runId, h.corpusRoot, force)
		if err := h.runs.SaveRun(runCtx, result); err != nil {
			log.Error("Could not persist run result", "runId", runId, "error", err)
		}
	}()

	writeJsonResponse(w, http.StatusAccepted, adapter.ToIndexAccepted(runId))
}

// IndexStatus godoc
// @Summary      Latest indexing run
// @Tags         Indexing
// @Produce      json
// @Success      200  {object}  api.IndexStatusResponse
// @Failure      404  {object}  api.ErrorResponse "No run recorded yet"
// @Router       /index/status [get]
func (h *Handler) IndexStatus(w http.ResponseWriter, r *http.Request) {
	run, found := h.runs.LatestRun(r.Context())
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "no indexing run recorded")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIndexStatusResponse(run))
}

// IndexStatusById godoc
// @Summary      Status of one indexing run
// @Tags         Indexing
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  api.IndexStatusResponse
// @Failure      404  {object}  api.ErrorResponse "Run not found"
// @Router       /index/status/{id} [get]
func (h *Handler) IndexStatusById(w http.ResponseWriter, r *http.Request) {
	runId := utils.GetChiURLParam(r, "id")
	if runId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "run id is required")
		return
	}
	run, found := h.runs.GetRun(r.Context(), runId)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIndexStatusResponse(run))
}

// Health godoc
// @Summary      Service health
// @Description  Reports vector store connectivity and collection size.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Failure      503  {object}  api.HealthResponse "Vector store unreachable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rag.CollectionStats(r.Context())
	if err != nil {
		h.requestLogger(r).Error("Health check failed", "error", err)
		writeJsonResponse(w, http.StatusServiceUnavailable, api.HealthResponse{Status: "degraded"})
		return
	}
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:         "ok",
		CollectionName: stats.CollectionName,
		PointsCount:    stats.PointsCount,
		VectorSize:     stats.VectorSize,
	})
}
