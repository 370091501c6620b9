package model

// QuerySpec is a structured filter+sort expression against the record
// schema, synthesized from a free-text question. Its JSON shape mirrors
// the Notion query payload so the model's output unmarshals directly.
type QuerySpec struct {
	Filter *Filter `json:"filter,omitempty"`
	Sorts  []Sort  `json:"sorts,omitempty"`
}

// Sort orders query results by one property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"` // "ascending" or "descending"
}

// Filter is one node of the predicate tree: either a compound "and" node
// or a single field-comparison leaf carrying exactly one typed condition.
type Filter struct {
	And []Filter `json:"and,omitempty"`

	Property string           `json:"property,omitempty"`
	Title    *TextCondition   `json:"title,omitempty"`
	RichText *TextCondition   `json:"rich_text,omitempty"`
	Select   *OptionCondition `json:"select,omitempty"`
	Status   *OptionCondition `json:"status,omitempty"`
	Date     *DateCondition   `json:"date,omitempty"`
	URL      *TextCondition   `json:"url,omitempty"`
}

// TextCondition compares a title, rich-text or url property.
type TextCondition struct {
	Equals       string `json:"equals,omitempty"`
	DoesNotEqual string `json:"does_not_equal,omitempty"`
	Contains     string `json:"contains,omitempty"`
	IsNotEmpty   bool   `json:"is_not_empty,omitempty"`
}

// OptionCondition compares a select or status property.
type OptionCondition struct {
	Equals       string `json:"equals,omitempty"`
	DoesNotEqual string `json:"does_not_equal,omitempty"`
	IsNotEmpty   bool   `json:"is_not_empty,omitempty"`
}

// DateCondition compares a date property against an ISO date string.
type DateCondition struct {
	Equals     string `json:"equals,omitempty"`
	Before     string `json:"before,omitempty"`
	After      string `json:"after,omitempty"`
	OnOrBefore string `json:"on_or_before,omitempty"`
	OnOrAfter  string `json:"on_or_after,omitempty"`
}

// IsCompound reports whether the node is an "and" branch rather than a leaf.
func (f *Filter) IsCompound() bool {
	return len(f.And) > 0
}

// QuerySummary is an optional digest of a query result set.
type QuerySummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status,omitempty"`
}
