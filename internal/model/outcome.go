package model

// OutcomeKind names the terminal branch a user turn ended in.
type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeQueried OutcomeKind = "queried"
	OutcomeUnknown OutcomeKind = "unknown"
)

// Outcome is the result of dispatching one user turn. Only the fields
// relevant to the branch taken are populated.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message,omitempty"`

	// Create branch
	PropertyName    string `json:"property_name,omitempty"`
	DublinZone      string `json:"dublin_zone,omitempty"`
	ApplicationDate string `json:"application_date,omitempty"`

	// Update branch
	MatchedName string `json:"matched_name,omitempty"`
	NewStatus   Status `json:"new_status,omitempty"`

	// Query branch
	Records []Record      `json:"records,omitempty"`
	Summary *QuerySummary `json:"summary,omitempty"`
}
