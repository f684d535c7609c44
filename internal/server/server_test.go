package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gitlite/flowgraph/pkg/cache"
	"github.com/gitlite/flowgraph/pkg/history"
	"github.com/gitlite/flowgraph/pkg/pipeline"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.NewWithOptions(io.Discard, log.Options{}))
	srv := New(runner, log.NewWithOptions(io.Discard, log.Options{}))
	return srv.Routes()
}

func testBody(t *testing.T) []byte {
	t.Helper()
	req := computeRequest{
		History: history.History{
			Commits: []history.Commit{
				{Hash: "c0", Message: "Merge branch 'dev'", Date: 4000, Parents: []string{"c1", "c2"}},
				{Hash: "c1", Message: "feat: mainline", Date: 3000, Parents: []string{"c3"}},
				{Hash: "c2", Message: "feat: branch", Date: 2000, Parents: []string{"c3"}},
				{Hash: "c3", Message: "init", Date: 1000},
			},
			Branches: []history.Branch{
				{Name: "main", IsCurrent: true, TargetHash: "c0"},
				{Name: "dev", TargetHash: "c2"},
			},
		},
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return data
}

func TestHealthz(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayoutEndpoint(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/layout", bytes.NewReader(testBody(t)))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.HistoryHash == "" {
		t.Error("history_hash should be set")
	}
	if body.Layout.LaneCount != 2 {
		t.Errorf("lane_count = %d, want 2", body.Layout.LaneCount)
	}
	if len(body.Layout.LaneByRow) != 4 {
		t.Errorf("lane_by_row length = %d, want 4", len(body.Layout.LaneByRow))
	}
	if body.Cached {
		t.Error("null cache should never report a hit")
	}
}

func TestFlowsEndpoint(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flows", bytes.NewReader(testBody(t)))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body flowsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Labels["c2"] != "dev" {
		t.Errorf("labels[c2] = %q, want dev", body.Labels["c2"])
	}
	if len(body.Groups) == 0 {
		t.Error("groups should not be empty")
	}
}

func TestMalformedBody(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/layout", strings.NewReader("not json"))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/layout", strings.NewReader(`{"histroy": {}}`))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unknown field", rec.Code)
	}
}

func TestEmptyHistoryRejected(t *testing.T) {
	handler := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/flows", strings.NewReader(`{"history": {"commits": [], "branches": []}}`))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "EMPTY_HISTORY" {
		t.Errorf("code = %q, want EMPTY_HISTORY", body.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	handler := testServer(t)

	// Client-supplied ID is honored
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "client-42")
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "client-42" {
		t.Errorf("X-Request-ID = %q, want client-42", got)
	}

	// Otherwise one is generated
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("a request ID should be generated when absent")
	}
}
