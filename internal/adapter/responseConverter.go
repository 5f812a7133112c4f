package adapter

import (
	"fmt"

	"github.com/physai/bookrag/internal/api"
	"github.com/physai/bookrag/internal/domain/ragmodel"
)

func ToChatResponse(response *ragmodel.Response) api.ChatResponse {
	citations := make([]api.Citation, 0, len(response.Citations))
	for _, c := range response.Citations {
		citations = append(citations, api.Citation{
			Document:       c.Document,
			Section:        c.Section,
			RelevanceScore: c.RelevanceScore,
		})
	}
	return api.ChatResponse{
		Answer:         response.Answer,
		Citations:      citations,
		ConversationId: response.ConversationId,
		Grounded:       response.Grounded,
	}
}

func ToIndexAccepted(runId string) api.IndexAccepted {
	return api.IndexAccepted{
		RunId:     runId,
		StatusURL: fmt.Sprintf("index/status/%s", runId),
	}
}

func ToIndexStatusResponse(run ragmodel.IndexResult) api.IndexStatusResponse {
	failures := make([]api.FileFailure, 0, len(run.Failures))
	for _, f := range run.Failures {
		failures = append(failures, api.FileFailure{Path: f.Path, Error: f.Error})
	}
	return api.IndexStatusResponse{
		RunId:          run.RunId,
		Status:         string(run.Status),
		FilesProcessed: run.FilesProcessed,
		ChunksCreated:  run.ChunksCreated,
		Failures:       failures,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		Error:          run.Error,
	}
}

func BadRequest(message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
