package models

// WorkerRole enum
type WorkerRole string

const (
	Sanitation  WorkerRole = "Sanitation"
	Plumber     WorkerRole = "Plumber"
	Electrician WorkerRole = "Electrician"
	General     WorkerRole = "General"
)

// Worker represents a field staff member eligible for issue assignment.
// Workers are never deleted; triage only toggles the active flag.
type Worker struct {
	ID       string     `bson:"_id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	Role     WorkerRole `bson:"role" json:"role"`
	Location GeoPoint   `bson:"location" json:"location"`
	Phone    string     `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string     `bson:"email,omitempty" json:"email,omitempty"`
	Active   bool       `bson:"active" json:"active"`
}

// RoleForCategory maps an issue category to the role that handles it.
// Categories without a dedicated crew fall through to General.
func RoleForCategory(cat IssueCategory) WorkerRole {
	switch cat {
	case Garbage:
		return Sanitation
	case BrokenPipeline:
		return Plumber
	case StreetLight:
		return Electrician
	default:
		return General
	}
}

// ValidRole reports whether r is one of the known worker roles.
func ValidRole(r WorkerRole) bool {
	switch r {
	case Sanitation, Plumber, Electrician, General:
		return true
	}
	return false
}

// DefaultWorkers is the roster seeded when the worker store is empty.
func DefaultWorkers() []Worker {
	return []Worker{
		{
			ID:       "w-san-1",
			Name:     "Asha (Sanitation)",
			Role:     Sanitation,
			Location: GeoPoint{Lat: 28.6139, Lng: 77.209},
			Phone:    "+91-900000001",
			Active:   true,
		},
		{
			ID:       "w-plu-1",
			Name:     "Ravi (Plumber)",
			Role:     Plumber,
			Location: GeoPoint{Lat: 28.62, Lng: 77.22},
			Phone:    "+91-900000002",
			Active:   true,
		},
		{
			ID:       "w-ele-1",
			Name:     "Neha (Electrician)",
			Role:     Electrician,
			Location: GeoPoint{Lat: 28.605, Lng: 77.19},
			Phone:    "+91-900000003",
			Active:   true,
		},
		{
			ID:       "w-gen-1",
			Name:     "Sanjay (General)",
			Role:     General,
			Location: GeoPoint{Lat: 28.635, Lng: 77.205},
			Phone:    "+91-900000004",
			Active:   true,
		},
	}
}
