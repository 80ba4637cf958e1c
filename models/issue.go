package models

import "time"

// IssueCategory enum
type IssueCategory string

const (
	Garbage        IssueCategory = "Garbage"
	BrokenPipeline IssueCategory = "Broken Pipeline"
	StreetLight    IssueCategory = "Street Light"
	Pothole        IssueCategory = "Pothole"
	Encroachment   IssueCategory = "Encroachment"
	Other          IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Completed  IssueStatus = "Completed"
)

// DueWindow is the resolution target measured from issue creation.
// Its millisecond value (86,400,000) is part of the external contract.
const DueWindow = 24 * time.Hour

// Issue represents a civic issue reported by a citizen. Timestamps are epoch
// milliseconds so the due-window arithmetic stays exact end to end.
type Issue struct {
	ID                 string        `bson:"_id" json:"id"`
	Title              string        `bson:"title" json:"title"`
	Description        string        `bson:"description" json:"description"`
	Category           IssueCategory `bson:"category" json:"category"`
	ImageDataURL       string        `bson:"imageDataUrl,omitempty" json:"imageDataUrl,omitempty"`
	ProofImageURL      string        `bson:"proofImageUrl,omitempty" json:"proofImageUrl,omitempty"`
	Location           *GeoPoint     `bson:"location,omitempty" json:"location,omitempty"`
	Address            string        `bson:"address,omitempty" json:"address,omitempty"`
	Status             IssueStatus   `bson:"status" json:"status"`
	CreatedAt          int64         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          int64         `bson:"updatedAt" json:"updatedAt"`
	DueAt              int64         `bson:"dueAt" json:"dueAt"`
	AssignedToWorkerID string        `bson:"assignedToWorkerId,omitempty" json:"assignedToWorkerId,omitempty"`
	CreatedBy          string        `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// DueAt returns the fixed resolution deadline for an issue created at the
// given epoch-millisecond timestamp. The deadline is never recomputed.
func DueAt(createdAt int64) int64 {
	return createdAt + DueWindow.Milliseconds()
}

// ValidCategory reports whether c is one of the known issue categories.
func ValidCategory(c IssueCategory) bool {
	switch c {
	case Garbage, BrokenPipeline, StreetLight, Pothole, Encroachment, Other:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case Pending, InProgress, Completed:
		return true
	}
	return false
}
