package export

import (
	"encoding/json"
	"strings"
	"testing"

	"cleancity-be/models"
)

const header = "id,title,category,status,assignedTo,createdAt,dueAt,lat,lng,address"

func TestToCSVEmpty(t *testing.T) {
	if got := ToCSV(nil); got != header {
		t.Fatalf("ToCSV(nil) = %q; want just the header row", got)
	}
	if got := ToCSV([]models.Issue{}); got != header {
		t.Fatalf("ToCSV(empty) = %q; want just the header row", got)
	}
}

func TestToCSVRow(t *testing.T) {
	issue := models.Issue{
		ID:                 "issue-1",
		Title:              "Overflowing bin",
		Category:           models.Garbage,
		Status:             models.Pending,
		AssignedToWorkerID: "w-san-1",
		CreatedAt:          0,
		DueAt:              86_400_000,
		Location:           &models.GeoPoint{Lat: 28.6139, Lng: 77.209},
		Address:            "Connaught Place",
	}

	got := ToCSV([]models.Issue{issue})
	want := header + "\n" +
		`issue-1,"Overflowing bin",Garbage,Pending,w-san-1,1970-01-01T00:00:00.000Z,1970-01-02T00:00:00.000Z,28.6139,77.209,"Connaught Place"`

	if got != want {
		t.Fatalf("ToCSV row mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestToCSVDoublesQuotes(t *testing.T) {
	issue := models.Issue{
		ID:       "issue-2",
		Title:    `Pipe burst near "old market"`,
		Category: models.BrokenPipeline,
		Status:   models.InProgress,
	}

	got := ToCSV([]models.Issue{issue})

	if !strings.Contains(got, `"Pipe burst near ""old market"""`) {
		t.Fatalf("quotes not doubled in: %q", got)
	}
}

func TestToCSVMissingOptionalFields(t *testing.T) {
	issue := models.Issue{
		ID:       "issue-3",
		Title:    "No location reported",
		Category: models.Other,
		Status:   models.Pending,
	}

	got := ToCSV([]models.Issue{issue})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// assignedTo, lat, and lng stay empty; address is a quoted empty string.
	want := `issue-3,"No location reported",Other,Pending,,1970-01-01T00:00:00.000Z,1970-01-01T00:00:00.000Z,,,""`
	if lines[1] != want {
		t.Fatalf("row = %q; want %q", lines[1], want)
	}
}

func TestToCSVPreservesInputOrder(t *testing.T) {
	issues := []models.Issue{
		{ID: "b", Title: "second created, listed first", Category: models.Other, Status: models.Pending, CreatedAt: 2000},
		{ID: "a", Title: "first created", Category: models.Other, Status: models.Pending, CreatedAt: 1000},
	}

	got := ToCSV(issues)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "b,") || !strings.HasPrefix(lines[2], "a,") {
		t.Fatalf("input order not preserved:\n%s", got)
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	issues := []models.Issue{
		{ID: "issue-1", Title: "Overflowing bin", Category: models.Garbage, Status: models.Pending, CreatedAt: 1000, DueAt: models.DueAt(1000)},
	}

	out, err := ToJSON(issues)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var decoded []models.Issue
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "issue-1" || decoded[0].DueAt != 86_401_000 {
		t.Fatalf("decoded = %+v; want the original issue back", decoded)
	}
}

func TestToJSONEmptyIsArray(t *testing.T) {
	out, err := ToJSON(nil)
	if err != nil {
		t.Fatalf("ToJSON(nil): %v", err)
	}
	if out != "[]" {
		t.Fatalf("ToJSON(nil) = %q; want %q", out, "[]")
	}
}
