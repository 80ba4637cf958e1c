package repository

import (
	"context"
	"errors"

	"cleancity-be/models"
)

// ErrNotFound is returned when a referenced issue or worker does not exist.
var ErrNotFound = errors.New("record not found")

// IssueFilter narrows List and Count results. Zero values mean no filtering;
// Sort is "newest" (default) or "oldest".
type IssueFilter struct {
	Category string
	Status   string
	Search   string
	Sort     string
	Skip     int64
	Limit    int64
}

// IssuePatch carries the mutable issue fields. Nil pointers are left
// untouched; the store bumps updatedAt on every applied patch.
type IssuePatch struct {
	Title              *string
	Description        *string
	Category           *models.IssueCategory
	ImageDataURL       *string
	ProofImageURL      *string
	Location           *models.GeoPoint
	Address            *string
	Status             *models.IssueStatus
	AssignedToWorkerID *string
}

// IssueRepository is the persistence port for issues.
type IssueRepository interface {
	Insert(ctx context.Context, issue models.Issue) error
	Get(ctx context.Context, id string) (models.Issue, error)
	List(ctx context.Context, f IssueFilter) ([]models.Issue, error)
	Count(ctx context.Context, f IssueFilter) (int64, error)
	Update(ctx context.Context, id string, patch IssuePatch) (models.Issue, error)
}

// WorkerRepository is the persistence port for the field-worker roster.
type WorkerRepository interface {
	Insert(ctx context.Context, w models.Worker) error
	Get(ctx context.Context, id string) (models.Worker, error)
	List(ctx context.Context) ([]models.Worker, error)
	SetActive(ctx context.Context, id string, active bool) (models.Worker, error)
	// EnsureSeed inserts the given roster only when the store holds no workers.
	EnsureSeed(ctx context.Context, seed []models.Worker) error
}
