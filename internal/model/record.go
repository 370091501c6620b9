package model

// Status is the application status of a tracked listing.
// The set is closed: anything outside it coerces to StatusApplied on write.
type Status string

const (
	StatusNotYetApplied Status = "Not yet applied"
	StatusApplied       Status = "Applied"
	StatusRejected      Status = "Rejected"
	StatusAccepted      Status = "Accepted"
	StatusInterviewTour Status = "Interview/Tour"
	StatusWaitlisted    Status = "Waitlisted"
)

// StatusOptions lists every valid status, in the order the Notion database
// declares them.
var StatusOptions = []Status{
	StatusNotYetApplied,
	StatusApplied,
	StatusRejected,
	StatusAccepted,
	StatusInterviewTour,
	StatusWaitlisted,
}

// ValidStatus reports whether s is one of the closed status values.
func ValidStatus(s string) bool {
	for _, opt := range StatusOptions {
		if string(opt) == s {
			return true
		}
	}
	return false
}

// CoerceStatus maps an arbitrary string into the closed status set,
// falling back to StatusApplied for anything it does not recognize.
func CoerceStatus(s string) Status {
	if ValidStatus(s) {
		return Status(s)
	}
	return StatusApplied
}

// HousingTypes lists the valid "Housing Type Needed" select options.
// Values outside this set are silently dropped, never stored.
var HousingTypes = []string{
	"Studio",
	"1 Bedroom",
	"2 Bedroom",
	"3 Bedroom+",
	"House",
}

// ValidHousingType reports whether t is one of the closed housing types.
func ValidHousingType(t string) bool {
	for _, ht := range HousingTypes {
		if ht == t {
			return true
		}
	}
	return false
}

// DefaultPropertyName is used when no usable property name survives cleanup.
const DefaultPropertyName = "Unknown Property"

// Record represents one tracked listing as stored in the Notion database.
type Record struct {
	PageID          string  `json:"page_id,omitempty"`
	Name            string  `json:"property_name"`
	Status          Status  `json:"status"`
	ApplicationDate string  `json:"application_date"`
	WebsiteLink     *string `json:"website_link,omitempty"`
	HousingType     *string `json:"housing_type,omitempty"`
	ContactInfo     *string `json:"contact_info,omitempty"`
	Location        *string `json:"location,omitempty"`
	Price           *string `json:"price,omitempty"`
	DublinZone      *string `json:"dublin_zone,omitempty"`
}
