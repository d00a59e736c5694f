package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/entitytriage/triage/internal/config"
)

func TestHandleCreateJobReturnsAccepted(t *testing.T) {
	store := newTestStore(t)
	srv := NewServer(store, t.TempDir(), config.DefaultConfig())

	body, _ := json.Marshal(createJobRequest{Commit: "HEAD"})
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}

	var job Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if job.State != JobPending && job.State != JobAnalyzing {
		t.Errorf("State = %q, want pending or analyzing", job.State)
	}
}

func TestHandleGetJobUnknownReturns404(t *testing.T) {
	store := newTestStore(t)
	srv := NewServer(store, t.TempDir(), config.DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/jobs/nope", nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleCreateJobRejectsBadBody(t *testing.T) {
	store := newTestStore(t)
	srv := NewServer(store, t.TempDir(), config.DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
