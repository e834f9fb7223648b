package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type questionRequest struct {
	Question string `json:"question"`
}

type questionResponse struct {
	Answer   string           `json:"answer"`
	SQLQuery string           `json:"sql_query"`
	Results  []map[string]any `json:"results"`
}

func handleQuestion(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Pipeline == nil || deps.Messages == nil {
		message := "question dependencies are not configured"
		if deps.Messages != nil {
			message = deps.Messages.NotReady
		}
		writeError(r.Context(), w, http.StatusServiceUnavailable, "NOT_READY", message, true, nil)
		return
	}

	var request questionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid question request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(request.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	outcome := deps.Pipeline.Answer(r.Context(), request.Question)

	results := outcome.Rows
	if results == nil {
		results = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, questionResponse{
		Answer:   outcome.Status,
		SQLQuery: outcome.SQL,
		Results:  results,
	})
}
