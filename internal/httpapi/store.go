// Package httpapi exposes the triage engine over HTTP for collaborators
// that can't run the CLI directly (CI bots, review dashboards). Jobs are
// analyzed asynchronously and persisted in a bbolt database so a client
// can poll for completion; the package contributes no algorithmic
// content of its own, it only drives internal/triage.
package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/model"
)

// JobState is a stage in a review job's lifecycle.
type JobState string

const (
	JobPending   JobState = "pending"
	JobAnalyzing JobState = "analyzing"
	JobReviewing JobState = "reviewing"
	JobComplete  JobState = "complete"
	JobFailed    JobState = "failed"
)

var jobsBucket = []byte("jobs")

// Job is a single asynchronous review request and its current state.
type Job struct {
	ID        string            `json:"id"`
	Scope     gitscope.Scope    `json:"scope"`
	State     JobState          `json:"state"`
	Result    *model.ReviewResult `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store persists jobs in a bbolt database, keyed by job ID.
type Store struct {
	db *bolt.DB
}

// OpenStore opens (creating if necessary) the bbolt database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening job store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(jobsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating jobs bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create enqueues a new job in JobPending state.
func (s *Store) Create(scope gitscope.Scope) (*Job, error) {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Scope:     scope,
		State:     JobPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.put(job); err != nil {
		return nil, err
	}
	return job, nil
}

// Get retrieves a job by ID.
func (s *Store) Get(id string) (*Job, error) {
	var job Job
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(jobsBucket)
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("job %s not found", id)
		}
		return json.Unmarshal(data, &job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Transition moves a job to a new state, applying mutate (e.g. to attach
// a result or error) before persisting.
func (s *Store) Transition(id string, state JobState, mutate func(*Job)) error {
	job, err := s.Get(id)
	if err != nil {
		return err
	}
	job.State = state
	job.UpdatedAt = time.Now()
	if mutate != nil {
		mutate(job)
	}
	return s.put(job)
}

func (s *Store) put(job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(jobsBucket).Put([]byte(job.ID), data)
	})
}
