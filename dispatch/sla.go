package dispatch

import (
	"context"
	"time"

	"cleancity-be/models"
	"cleancity-be/repository"
)

// IsOverdue reports whether the issue has passed its resolution deadline.
// Completed issues are never overdue, regardless of timestamps.
func IsOverdue(issue models.Issue, now time.Time) bool {
	return issue.DueAt < now.UnixMilli() && issue.Status != models.Completed
}

// HoursRemaining returns the whole hours left until the deadline, clamped at
// zero. Once overdue it reports 0.
func HoursRemaining(issue models.Issue, now time.Time) int {
	remaining := issue.DueAt - now.UnixMilli()
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Hour.Milliseconds())
}

// OverdueIssues returns every issue past its deadline and not yet Completed.
// SLA breach is a condition external notifiers poll for; nothing here fires
// automatically.
func (e *Engine) OverdueIssues(ctx context.Context, now time.Time) ([]models.Issue, error) {
	issues, err := e.issues.List(ctx, repository.IssueFilter{})
	if err != nil {
		return nil, err
	}

	overdue := []models.Issue{}
	for _, issue := range issues {
		if IsOverdue(issue, now) {
			overdue = append(overdue, issue)
		}
	}
	return overdue, nil
}
