package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const isoDateLayout = "2006-01-02"

// Relative date phrases recognized inside a longer utterance, tried in order.
var dateExpressionRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s+days?\s+ago`),
	regexp.MustCompile(`(?i)\d+\s+weeks?\s+ago`),
	regexp.MustCompile(`(?i)\byesterday\b`),
	regexp.MustCompile(`(?i)\btoday\b`),
	regexp.MustCompile(`(?i)\blast\s+week\b`),
	regexp.MustCompile(`(?i)\blast\s+month\b`),
}

// ResolveDate maps a natural-language date expression to an ISO calendar
// date. It is total: empty input and unparseable input both resolve to the
// given "now", and relative forms like "3 days ago" resolve against it
// preferring past dates, so "Monday" means the most recent past Monday.
func ResolveDate(expr string, now time.Time) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return now.Format(isoDateLayout)
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dateparser.Past,
	}
	parsed, err := dateparser.Parse(cfg, expr)
	if err != nil || parsed.Time.IsZero() {
		return now.Format(isoDateLayout)
	}
	return parsed.Time.Format(isoDateLayout)
}

// ExtractDateExpression finds a relative-date phrase ("3 days ago",
// "yesterday", "last week", ...) inside a longer utterance. Returns ""
// when no phrase is present.
func ExtractDateExpression(text string) string {
	for _, re := range dateExpressionRegexes {
		if match := re.FindString(text); match != "" {
			return match
		}
	}
	return ""
}
