// Package dispatch holds the assignment engine and SLA evaluator. It has no
// transport or persistence of its own; stores are injected through the
// repository interfaces.
package dispatch

import (
	"context"
	"errors"
	"math"

	"cleancity-be/models"
	"cleancity-be/repository"
)

// OutcomeKind tags why an assignment attempt did or did not produce a worker,
// so callers can react differently to each case.
type OutcomeKind string

const (
	Assigned         OutcomeKind = "assigned"
	IssueNotFound    OutcomeKind = "issue_not_found"
	MissingLocation  OutcomeKind = "missing_location"
	NoEligibleWorker OutcomeKind = "no_eligible_worker"
)

// Outcome is the tagged result of an assignment attempt. Worker is non-nil
// only when Kind is Assigned.
type Outcome struct {
	Kind   OutcomeKind    `json:"outcome"`
	Worker *models.Worker `json:"worker,omitempty"`
}

// Engine matches issues to the nearest eligible field worker.
type Engine struct {
	issues  repository.IssueRepository
	workers repository.WorkerRepository
}

// NewEngine returns an assignment engine over the given stores.
func NewEngine(issues repository.IssueRepository, workers repository.WorkerRepository) *Engine {
	return &Engine{issues: issues, workers: workers}
}

// NearestWorker selects the closest active worker eligible for the issue's
// category. Workers matching the routed role are eligible, and General
// workers are fallback-eligible for every category. Ties keep the first
// candidate encountered in roster order.
func (e *Engine) NearestWorker(ctx context.Context, issue models.Issue) (Outcome, error) {
	if issue.Location == nil {
		return Outcome{Kind: MissingLocation}, nil
	}

	workers, err := e.workers.List(ctx)
	if err != nil {
		return Outcome{}, err
	}

	role := models.RoleForCategory(issue.Category)

	var best *models.Worker
	bestDist := math.Inf(1)
	for i := range workers {
		w := &workers[i]
		if !w.Active {
			continue
		}
		if w.Role != role && w.Role != models.General {
			continue
		}
		d := models.Distance(*issue.Location, w.Location)
		if d < bestDist {
			best = w
			bestDist = d
		}
	}

	if best == nil {
		return Outcome{Kind: NoEligibleWorker}, nil
	}
	return Outcome{Kind: Assigned, Worker: best}, nil
}

// AssignIssueToNearest looks up the issue, runs NearestWorker, and on success
// persists the chosen worker's id on the issue. A missing issue is reported
// as the IssueNotFound outcome, not an error.
func (e *Engine) AssignIssueToNearest(ctx context.Context, issueID string) (Outcome, error) {
	issue, err := e.issues.Get(ctx, issueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Outcome{Kind: IssueNotFound}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	out, err := e.NearestWorker(ctx, issue)
	if err != nil || out.Kind != Assigned {
		return out, err
	}

	workerID := out.Worker.ID
	if _, err := e.issues.Update(ctx, issueID, repository.IssuePatch{AssignedToWorkerID: &workerID}); err != nil {
		return Outcome{}, err
	}
	return out, nil
}
