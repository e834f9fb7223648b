package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/askdb/askdb/internal/pipeline"
)

type stubAnswerer struct {
	outcome      pipeline.Outcome
	lastQuestion string
}

func (s *stubAnswerer) Answer(_ context.Context, question string) pipeline.Outcome {
	s.lastQuestion = question
	return s.outcome
}

func TestQuestionEndpointReturnsAnswerEnvelope(t *testing.T) {
	cfg := testConfig(t)
	msgs := testMessages(t)
	stub := &stubAnswerer{outcome: pipeline.Outcome{
		SQL:     "SELECT e.name FROM employees e",
		Status:  msgs.Success,
		Columns: []string{"name"},
		Rows:    []map[string]any{{"name": "Steven"}},
	}}

	h := NewHandler(cfg, Dependencies{Messages: msgs, Pipeline: stub})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/query", jsonBody(`{"question": "List employee names"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
	if stub.lastQuestion != "List employee names" {
		t.Fatalf("question forwarded = %q", stub.lastQuestion)
	}
	var body struct {
		Answer   string           `json:"answer"`
		SQLQuery string           `json:"sql_query"`
		Results  []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body.Answer != msgs.Success {
		t.Fatalf("answer = %q", body.Answer)
	}
	if body.SQLQuery != "SELECT e.name FROM employees e" {
		t.Fatalf("sql_query = %q", body.SQLQuery)
	}
	if len(body.Results) != 1 || body.Results[0]["name"] != "Steven" {
		t.Fatalf("results = %#v", body.Results)
	}
}

func TestQuestionEndpointSerializesEmptyResultsAsArray(t *testing.T) {
	cfg := testConfig(t)
	msgs := testMessages(t)
	stub := &stubAnswerer{outcome: pipeline.Outcome{
		SQL:    "DROP TABLE employees",
		Status: msgs.UnsafeQuery,
	}}

	h := NewHandler(cfg, Dependencies{Messages: msgs, Pipeline: stub})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/query", jsonBody(`{"question": "drop it"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"results":[]`) {
		t.Fatalf("results not an empty array: %s", rr.Body.String())
	}
}

func TestQuestionEndpointReturns503WithoutPipeline(t *testing.T) {
	cfg := testConfig(t)
	msgs := testMessages(t)

	h := NewHandler(cfg, Dependencies{Messages: msgs})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/query", jsonBody(`{"question": "anything"}`)))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["message"] != msgs.NotReady {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestQuestionEndpointRejectsBadRequests(t *testing.T) {
	cfg := testConfig(t)
	msgs := testMessages(t)
	h := NewHandler(cfg, Dependencies{Messages: msgs, Pipeline: &stubAnswerer{}})

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"question": `},
		{"unknown field", `{"question": "x", "mode": "fast"}`},
		{"blank question", `{"question": "   "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/query", jsonBody(tc.body)))
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func jsonBody(body string) io.Reader {
	return strings.NewReader(body)
}
