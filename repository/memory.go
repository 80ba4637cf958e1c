package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cleancity-be/models"
)

// MemoryIssues is a map-backed issue store for tests and for running the
// service without MongoDB. Not durable.
type MemoryIssues struct {
	mu     sync.RWMutex
	issues map[string]models.Issue
}

// NewMemoryIssues returns an empty in-memory issue store.
func NewMemoryIssues() *MemoryIssues {
	return &MemoryIssues{issues: make(map[string]models.Issue)}
}

func (r *MemoryIssues) Insert(_ context.Context, issue models.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issues[issue.ID] = issue
	return nil
}

func (r *MemoryIssues) Get(_ context.Context, id string) (models.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	issue, ok := r.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}
	return issue, nil
}

func matchesFilter(issue models.Issue, f IssueFilter) bool {
	if f.Category != "" && f.Category != "all" && string(issue.Category) != f.Category {
		return false
	}
	if f.Status != "" && f.Status != "all" && string(issue.Status) != f.Status {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(issue.Title), needle) &&
			!strings.Contains(strings.ToLower(issue.Description), needle) {
			return false
		}
	}
	return true
}

func (r *MemoryIssues) List(_ context.Context, f IssueFilter) ([]models.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Issue{}
	for _, issue := range r.issues {
		if matchesFilter(issue, f) {
			matched = append(matched, issue)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if f.Sort == "oldest" {
			return matched[i].CreatedAt < matched[j].CreatedAt
		}
		return matched[i].CreatedAt > matched[j].CreatedAt
	})

	if f.Skip > 0 {
		if f.Skip >= int64(len(matched)) {
			return []models.Issue{}, nil
		}
		matched = matched[f.Skip:]
	}
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *MemoryIssues) Count(_ context.Context, f IssueFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, issue := range r.issues {
		if matchesFilter(issue, f) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryIssues) Update(_ context.Context, id string, patch IssuePatch) (models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	issue, ok := r.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}

	if patch.Title != nil {
		issue.Title = *patch.Title
	}
	if patch.Description != nil {
		issue.Description = *patch.Description
	}
	if patch.Category != nil {
		issue.Category = *patch.Category
	}
	if patch.ImageDataURL != nil {
		issue.ImageDataURL = *patch.ImageDataURL
	}
	if patch.ProofImageURL != nil {
		issue.ProofImageURL = *patch.ProofImageURL
	}
	if patch.Location != nil {
		loc := *patch.Location
		issue.Location = &loc
	}
	if patch.Address != nil {
		issue.Address = *patch.Address
	}
	if patch.Status != nil {
		issue.Status = *patch.Status
	}
	if patch.AssignedToWorkerID != nil {
		issue.AssignedToWorkerID = *patch.AssignedToWorkerID
	}
	issue.UpdatedAt = time.Now().UnixMilli()

	r.issues[id] = issue
	return issue, nil
}

// MemoryWorkers is a map-backed worker roster. Listing order is by worker id,
// matching the Mongo store.
type MemoryWorkers struct {
	mu      sync.RWMutex
	workers map[string]models.Worker
}

// NewMemoryWorkers returns an empty in-memory worker store.
func NewMemoryWorkers() *MemoryWorkers {
	return &MemoryWorkers{workers: make(map[string]models.Worker)}
}

func (r *MemoryWorkers) Insert(_ context.Context, w models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.ID] = w
	return nil
}

func (r *MemoryWorkers) Get(_ context.Context, id string) (models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	if !ok {
		return models.Worker{}, ErrNotFound
	}
	return w, nil
}

func (r *MemoryWorkers) List(_ context.Context) ([]models.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workers := make([]models.Worker, 0, len(r.workers))
	for _, w := range r.workers {
		workers = append(workers, w)
	}
	sort.Slice(workers, func(i, j int) bool { return workers[i].ID < workers[j].ID })
	return workers, nil
}

func (r *MemoryWorkers) SetActive(_ context.Context, id string, active bool) (models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workers[id]
	if !ok {
		return models.Worker{}, ErrNotFound
	}
	w.Active = active
	r.workers[id] = w
	return w, nil
}

func (r *MemoryWorkers) EnsureSeed(_ context.Context, seed []models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.workers) > 0 {
		return nil
	}
	for _, w := range seed {
		r.workers[w.ID] = w
	}
	return nil
}
