package models

import "testing"

func TestDueAtExactWindow(t *testing.T) {
	const createdAt = int64(1700000000000)

	got := DueAt(createdAt)
	if want := createdAt + 86_400_000; got != want {
		t.Fatalf("DueAt(%d) = %d; want %d", createdAt, got, want)
	}
}

func TestValidCategory(t *testing.T) {
	cases := []struct {
		name     string
		category IssueCategory
		want     bool
	}{
		{"garbage", Garbage, true},
		{"broken pipeline", BrokenPipeline, true},
		{"street light", StreetLight, true},
		{"pothole", Pothole, true},
		{"encroachment", Encroachment, true},
		{"other", Other, true},
		{"unknown", IssueCategory("Graffiti"), false},
		{"empty", IssueCategory(""), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidCategory(tc.category); got != tc.want {
				t.Fatalf("ValidCategory(%q) = %v; want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	cases := []struct {
		name   string
		status IssueStatus
		want   bool
	}{
		{"pending", Pending, true},
		{"in progress", InProgress, true},
		{"completed", Completed, true},
		{"unknown", IssueStatus("Closed"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidStatus(tc.status); got != tc.want {
				t.Fatalf("ValidStatus(%q) = %v; want %v", tc.status, got, tc.want)
			}
		})
	}
}
