package httpapi

import (
	"path/filepath"
	"testing"

	"github.com/entitytriage/triage/internal/gitscope"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCreateStartsPending(t *testing.T) {
	store := newTestStore(t)

	job, err := store.Create(gitscope.Scope{Commit: "HEAD"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.State != JobPending {
		t.Errorf("State = %q, want %q", job.State, JobPending)
	}
	if job.ID == "" {
		t.Error("expected non-empty job ID")
	}
}

func TestStoreGetRoundTrips(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create(gitscope.Scope{From: "main", To: "HEAD"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Scope != created.Scope {
		t.Errorf("Scope = %+v, want %+v", got.Scope, created.Scope)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get("does-not-exist"); err == nil {
		t.Error("expected error for unknown job ID")
	}
}

func TestStoreTransitionUpdatesStateAndFields(t *testing.T) {
	store := newTestStore(t)

	job, err := store.Create(gitscope.Scope{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Transition(job.ID, JobFailed, func(j *Job) { j.Error = "boom" }); err != nil {
		t.Fatalf("Transition: %v", err)
	}

	got, err := store.Get(job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.State != JobFailed {
		t.Errorf("State = %q, want %q", got.State, JobFailed)
	}
	if got.Error != "boom" {
		t.Errorf("Error = %q, want %q", got.Error, "boom")
	}
}
