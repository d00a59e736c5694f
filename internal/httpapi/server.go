package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/entitytriage/triage/internal/config"
	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/triage"
)

// Server drives review jobs through the httpapi's Pending -> Analyzing ->
// Reviewing -> Complete|Failed state machine over a bbolt-backed job
// store, asynchronously, and exposes the result over HTTP.
type Server struct {
	store    *Store
	repoRoot string
	cfg      *config.Config
	mux      *http.ServeMux
}

// NewServer wires a job store against a repository checkout at repoRoot.
func NewServer(store *Store, repoRoot string, cfg *config.Config) *Server {
	s := &Server{store: store, repoRoot: repoRoot, cfg: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /jobs", s.handleCreateJob)
	s.mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type createJobRequest struct {
	Commit string `json:"commit"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scope := gitscope.Scope{Commit: req.Commit, From: req.From, To: req.To}
	job, err := s.store.Create(scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	go s.run(job.ID, scope)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, err := s.store.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// run drives a job from Pending through to a terminal state, running the
// full analysis pipeline in the background.
func (s *Server) run(id string, scope gitscope.Scope) {
	log := logrus.WithField("job_id", id)

	if err := s.store.Transition(id, JobAnalyzing, nil); err != nil {
		log.WithError(err).Error("transitioning job to analyzing")
		return
	}

	result, err := triage.Analyze(context.Background(), s.repoRoot, scope, triage.Options{
		ImpactCap: s.cfg.Impact.Cap,
	})
	if err != nil {
		log.WithError(err).Error("analyze failed")
		s.store.Transition(id, JobFailed, func(j *Job) { j.Error = err.Error() })
		return
	}

	if err := s.store.Transition(id, JobReviewing, nil); err != nil {
		log.WithError(err).Error("transitioning job to reviewing")
		return
	}

	if err := s.store.Transition(id, JobComplete, func(j *Job) { j.Result = &result }); err != nil {
		log.WithError(err).Error("transitioning job to complete")
	}
}
