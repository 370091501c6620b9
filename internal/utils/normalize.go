package utils

import (
	"regexp"
	"strings"
)

var dublinZoneRegex = regexp.MustCompile(`(?i)Dublin\s+(\d{1,2})`)

// DeriveDublinZone extracts a Dublin postal zone code (D1, D2, ...) from
// address text. Returns "" when the address does not name a zone. The zone
// scheme only exists for Dublin addresses; everything else passes through
// unzoned.
func DeriveDublinZone(addressText string) string {
	match := dublinZoneRegex.FindStringSubmatch(addressText)
	if match == nil {
		return ""
	}
	return "D" + match[1]
}

// Ordered bedroom-count phrases stripped from the front of property names.
var bedroomPrefixRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+\s+Bedroom\s*`),
	regexp.MustCompile(`(?i)^\d+\s+Bed\s*`),
	regexp.MustCompile(`(?i)^\d+\s+BR\s*`),
	regexp.MustCompile(`(?i)^Studio\s*`),
}

var (
	leadingSymbolRegex = regexp.MustCompile(`^[^\w\s]+`)
	leadingDigitsRegex = regexp.MustCompile(`^\d+\s*`)
	typeWordRegex      = regexp.MustCompile(`(?i)\b(Apartment|House|Studio)\b`)
)

// CleanPropertyName strips unit-type words and bedroom-count phrases from
// a raw listing title, then leading symbols and digits. Each pattern is
// attempted independently; the function never fails and returns
// "Unknown Property" when nothing usable survives.
func CleanPropertyName(raw string) string {
	name := strings.TrimSpace(typeWordRegex.ReplaceAllString(raw, ""))

	for _, re := range bedroomPrefixRegexes {
		name = strings.TrimSpace(re.ReplaceAllString(name, ""))
	}

	name = strings.TrimSpace(leadingSymbolRegex.ReplaceAllString(name, ""))
	name = strings.TrimSpace(leadingDigitsRegex.ReplaceAllString(name, ""))
	name = strings.Join(strings.Fields(name), " ")

	if name == "" {
		return "Unknown Property"
	}
	return name
}

// Ordered boilerplate prefixes stripped from the front of full addresses.
// Longer combinations come first so they win over their own suffixes.
var addressPrefixRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Apartment\s+\d+\s+Bedroom\s*,?\s*`),
	regexp.MustCompile(`(?i)^House\s+\d+\s+Bedroom\s*,?\s*`),
	regexp.MustCompile(`(?i)^Studio\s+Apartment\s*,?\s*`),
	regexp.MustCompile(`(?i)^\d+\s+Bedroom\s+Apartment\s*,?\s*`),
	regexp.MustCompile(`(?i)^\d+\s+Bedroom\s+House\s*,?\s*`),
	regexp.MustCompile(`(?i)^\d+\s+Bedroom\s*,?\s*`),
	regexp.MustCompile(`(?i)^\d+\s+Bed\s*,?\s*`),
	regexp.MustCompile(`(?i)^Studio\s*,?\s*`),
	regexp.MustCompile(`(?i)^Apartment\s*,?\s*`),
	regexp.MustCompile(`(?i)^House\s*,?\s*`),
}

var (
	leadingCommaRegex = regexp.MustCompile(`^,\s*`)
	commaSpacingRegex = regexp.MustCompile(`\s*,\s*`)
)

// CleanAddress strips unit-type and bedroom-count boilerplate from the
// front of a full address and normalizes comma and whitespace spacing.
// Falls back to the raw input when stripping leaves nothing.
func CleanAddress(raw string) string {
	addr := strings.TrimSpace(raw)
	for _, re := range addressPrefixRegexes {
		addr = strings.TrimSpace(re.ReplaceAllString(addr, ""))
	}

	addr = strings.TrimSpace(leadingSymbolRegex.ReplaceAllString(addr, ""))
	addr = strings.TrimSpace(leadingCommaRegex.ReplaceAllString(addr, ""))
	addr = commaSpacingRegex.ReplaceAllString(addr, ", ")
	addr = strings.Join(strings.Fields(addr), " ")

	if addr == "" {
		return strings.TrimSpace(raw)
	}
	return addr
}
