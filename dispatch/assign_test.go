package dispatch

import (
	"context"
	"testing"

	"cleancity-be/models"
	"cleancity-be/repository"
)

func newTestEngine(t *testing.T, workers []models.Worker) (*Engine, *repository.MemoryIssues) {
	t.Helper()

	issueStore := repository.NewMemoryIssues()
	workerStore := repository.NewMemoryWorkers()
	for _, w := range workers {
		if err := workerStore.Insert(context.Background(), w); err != nil {
			t.Fatalf("seeding worker %s: %v", w.ID, err)
		}
	}
	return NewEngine(issueStore, workerStore), issueStore
}

func garbageIssue(loc *models.GeoPoint) models.Issue {
	return models.Issue{
		ID:       "issue-1",
		Title:    "Overflowing bin",
		Category: models.Garbage,
		Location: loc,
		Status:   models.Pending,
	}
}

func TestNearestWorkerPrefersMatchingRoleAtZeroDistance(t *testing.T) {
	engine, _ := newTestEngine(t, []models.Worker{
		{ID: "w-san", Role: models.Sanitation, Location: models.GeoPoint{Lat: 28.6139, Lng: 77.209}, Active: true},
		{ID: "w-gen", Role: models.General, Location: models.GeoPoint{Lat: 28.635, Lng: 77.205}, Active: true},
	})

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != Assigned {
		t.Fatalf("outcome = %q; want %q", out.Kind, Assigned)
	}
	if out.Worker.ID != "w-san" {
		t.Fatalf("assigned worker = %s; want w-san", out.Worker.ID)
	}
}

func TestNearestWorkerGeneralFallback(t *testing.T) {
	engine, _ := newTestEngine(t, []models.Worker{
		{ID: "w-plu", Role: models.Plumber, Location: models.GeoPoint{Lat: 28.6139, Lng: 77.209}, Active: true},
		{ID: "w-gen", Role: models.General, Location: models.GeoPoint{Lat: 28.635, Lng: 77.205}, Active: true},
	})

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != Assigned || out.Worker.ID != "w-gen" {
		t.Fatalf("got %q/%v; want the General fallback w-gen", out.Kind, out.Worker)
	}
}

func TestNearestWorkerRoleMismatchWithoutGeneral(t *testing.T) {
	engine, _ := newTestEngine(t, []models.Worker{
		{ID: "w-plu-1", Role: models.Plumber, Location: models.GeoPoint{Lat: 28.6139, Lng: 77.209}, Active: true},
		{ID: "w-plu-2", Role: models.Plumber, Location: models.GeoPoint{Lat: 28.62, Lng: 77.22}, Active: true},
	})

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != NoEligibleWorker {
		t.Fatalf("outcome = %q; want %q", out.Kind, NoEligibleWorker)
	}
	if out.Worker != nil {
		t.Fatalf("worker = %v; want nil", out.Worker)
	}
}

func TestNearestWorkerSkipsInactive(t *testing.T) {
	// The sanitation worker is geographically nearest but deactivated.
	engine, _ := newTestEngine(t, []models.Worker{
		{ID: "w-san", Role: models.Sanitation, Location: models.GeoPoint{Lat: 28.6139, Lng: 77.209}, Active: false},
		{ID: "w-gen", Role: models.General, Location: models.GeoPoint{Lat: 28.635, Lng: 77.205}, Active: true},
	})

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != Assigned || out.Worker.ID != "w-gen" {
		t.Fatalf("got %q; want w-gen after skipping inactive w-san", out.Kind)
	}
}

func TestNearestWorkerMissingLocation(t *testing.T) {
	engine, _ := newTestEngine(t, models.DefaultWorkers())

	out, err := engine.NearestWorker(context.Background(), garbageIssue(nil))
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != MissingLocation {
		t.Fatalf("outcome = %q; want %q", out.Kind, MissingLocation)
	}
}

func TestNearestWorkerEmptyPool(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != NoEligibleWorker {
		t.Fatalf("outcome = %q; want %q", out.Kind, NoEligibleWorker)
	}
}

func TestNearestWorkerTieKeepsFirstInRosterOrder(t *testing.T) {
	// Both generals sit at the same point; roster order is by id.
	loc := models.GeoPoint{Lat: 28.6139, Lng: 77.209}
	engine, _ := newTestEngine(t, []models.Worker{
		{ID: "w-gen-b", Role: models.General, Location: loc, Active: true},
		{ID: "w-gen-a", Role: models.General, Location: loc, Active: true},
	})

	issue := garbageIssue(&loc)

	out, err := engine.NearestWorker(context.Background(), issue)
	if err != nil {
		t.Fatalf("NearestWorker: %v", err)
	}
	if out.Kind != Assigned || out.Worker.ID != "w-gen-a" {
		t.Fatalf("tie broke to %v; want first-encountered w-gen-a", out.Worker)
	}
}

func TestAssignIssueToNearestPersistsAssignment(t *testing.T) {
	engine, issueStore := newTestEngine(t, models.DefaultWorkers())

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})
	if err := issueStore.Insert(context.Background(), issue); err != nil {
		t.Fatalf("inserting issue: %v", err)
	}

	out, err := engine.AssignIssueToNearest(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("AssignIssueToNearest: %v", err)
	}
	if out.Kind != Assigned || out.Worker.ID != "w-san-1" {
		t.Fatalf("got %q/%v; want the seeded sanitation worker", out.Kind, out.Worker)
	}

	stored, err := issueStore.Get(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("reloading issue: %v", err)
	}
	if stored.AssignedToWorkerID != "w-san-1" {
		t.Fatalf("persisted assignedToWorkerId = %q; want w-san-1", stored.AssignedToWorkerID)
	}
}

func TestAssignIssueToNearestUnknownIssue(t *testing.T) {
	engine, _ := newTestEngine(t, models.DefaultWorkers())

	out, err := engine.AssignIssueToNearest(context.Background(), "no-such-issue")
	if err != nil {
		t.Fatalf("AssignIssueToNearest: %v", err)
	}
	if out.Kind != IssueNotFound {
		t.Fatalf("outcome = %q; want %q", out.Kind, IssueNotFound)
	}
}

func TestAssignIssueToNearestReassigns(t *testing.T) {
	engine, issueStore := newTestEngine(t, models.DefaultWorkers())

	issue := garbageIssue(&models.GeoPoint{Lat: 28.6139, Lng: 77.209})
	issue.AssignedToWorkerID = "w-gen-1"
	if err := issueStore.Insert(context.Background(), issue); err != nil {
		t.Fatalf("inserting issue: %v", err)
	}

	out, err := engine.AssignIssueToNearest(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("AssignIssueToNearest: %v", err)
	}
	if out.Kind != Assigned || out.Worker.ID != "w-san-1" {
		t.Fatalf("reassignment got %q/%v; want w-san-1", out.Kind, out.Worker)
	}

	stored, _ := issueStore.Get(context.Background(), issue.ID)
	if stored.AssignedToWorkerID != "w-san-1" {
		t.Fatalf("persisted assignedToWorkerId = %q; want w-san-1", stored.AssignedToWorkerID)
	}
}
