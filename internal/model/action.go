package model

// Intent classifies what a single user utterance asks the assistant to do.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentQuery  Intent = "query"
)

// Fields is a partial set of record attributes extracted from one input,
// by either the listing scraper or the AI field extractor. A nil pointer
// means "unknown", not "empty". The JSON keys match what the model is
// prompted to emit, so its output unmarshals directly.
type Fields struct {
	PropertyName    *string `json:"property_name,omitempty"`
	WebsiteLink     *string `json:"website_link,omitempty"`
	ApplicationDate *string `json:"application_date,omitempty"` // raw date expression, e.g. "3 days ago"
	HousingType     *string `json:"housing_type,omitempty"`
	ContactInfo     *string `json:"contact_info,omitempty"`
	Status          *string `json:"status,omitempty"`
	Location        *string `json:"location,omitempty"`
	Price           *string `json:"price,omitempty"`
	DublinZone      *string `json:"dublin_zone,omitempty"`
}

// IsEmpty reports whether no field at all was extracted.
func (f *Fields) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.PropertyName == nil &&
		f.WebsiteLink == nil &&
		f.ApplicationDate == nil &&
		f.HousingType == nil &&
		f.ContactInfo == nil &&
		f.Status == nil &&
		f.Location == nil &&
		f.Price == nil &&
		f.DublinZone == nil
}

// Action is the classified result of one user turn: an intent tag plus
// whatever fields accompanied it. Transient, never persisted.
type Action struct {
	Intent Intent `json:"intent"`
	Fields
}

// String is a convenience for building optional field values.
func String(s string) *string {
	return &s
}
