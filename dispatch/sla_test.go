package dispatch

import (
	"context"
	"testing"
	"time"

	"cleancity-be/models"
	"cleancity-be/repository"
)

const createdAt = int64(1_700_000_000_000)

func issueDueAt(status models.IssueStatus) models.Issue {
	return models.Issue{
		ID:        "issue-sla",
		Status:    status,
		CreatedAt: createdAt,
		DueAt:     models.DueAt(createdAt),
	}
}

func TestIsOverdueBoundary(t *testing.T) {
	cases := []struct {
		name   string
		status models.IssueStatus
		nowMS  int64
		want   bool
	}{
		{"1ms before deadline", models.Pending, createdAt + 86_399_999, false},
		{"exactly at deadline", models.Pending, createdAt + 86_400_000, false},
		{"1ms past deadline", models.Pending, createdAt + 86_400_001, true},
		{"long past deadline, in progress", models.InProgress, createdAt + 2*86_400_000, true},
		{"past deadline but completed", models.Completed, createdAt + 86_400_001, false},
		{"completed far past deadline", models.Completed, createdAt + 10*86_400_000, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issue := issueDueAt(tc.status)
			if got := IsOverdue(issue, time.UnixMilli(tc.nowMS)); got != tc.want {
				t.Fatalf("IsOverdue at %d = %v; want %v", tc.nowMS, got, tc.want)
			}
		})
	}
}

func TestHoursRemaining(t *testing.T) {
	cases := []struct {
		name  string
		nowMS int64
		want  int
	}{
		{"full window ahead", createdAt, 24},
		{"just under 24h left", createdAt + 1, 23},
		{"just over one hour left", createdAt + 86_400_000 - 3_600_001, 1},
		{"under one hour left floors to zero", createdAt + 86_400_000 - 3_599_999, 0},
		{"at deadline", createdAt + 86_400_000, 0},
		{"overdue clamps to zero", createdAt + 86_400_000 + 5_000_000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issue := issueDueAt(models.Pending)
			if got := HoursRemaining(issue, time.UnixMilli(tc.nowMS)); got != tc.want {
				t.Fatalf("HoursRemaining at %d = %d; want %d", tc.nowMS, got, tc.want)
			}
		})
	}
}

func TestOverdueIssuesScan(t *testing.T) {
	issueStore := repository.NewMemoryIssues()
	workerStore := repository.NewMemoryWorkers()
	engine := NewEngine(issueStore, workerStore)

	overdue := issueDueAt(models.Pending)
	overdue.ID = "overdue-1"

	completed := issueDueAt(models.Completed)
	completed.ID = "completed-1"

	fresh := issueDueAt(models.Pending)
	fresh.ID = "fresh-1"
	fresh.CreatedAt = createdAt + 86_400_000
	fresh.DueAt = models.DueAt(fresh.CreatedAt)

	for _, issue := range []models.Issue{overdue, completed, fresh} {
		if err := issueStore.Insert(context.Background(), issue); err != nil {
			t.Fatalf("inserting %s: %v", issue.ID, err)
		}
	}

	now := time.UnixMilli(createdAt + 86_400_001)
	got, err := engine.OverdueIssues(context.Background(), now)
	if err != nil {
		t.Fatalf("OverdueIssues: %v", err)
	}

	if len(got) != 1 || got[0].ID != "overdue-1" {
		t.Fatalf("OverdueIssues = %v; want only overdue-1", got)
	}
}
