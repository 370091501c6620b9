package utils

import (
	"testing"
)

func TestDeriveDublinZone(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{
			name:    "Simple zone",
			address: "Dublin 1",
			want:    "D1",
		},
		{
			name:    "Two digit zone",
			address: "Rathfarnham, Dublin 14",
			want:    "D14",
		},
		{
			name:    "Case insensitive",
			address: "mayor street lower, ifsc, dublin 1",
			want:    "D1",
		},
		{
			name:    "Full address",
			address: "Custom House Square, Mayor Street Lower, IFSC, Dublin 1",
			want:    "D1",
		},
		{
			name:    "No zone number",
			address: "Griffith Avenue, Dublin",
			want:    "",
		},
		{
			name:    "Not Dublin at all",
			address: "Patrick Street, Cork",
			want:    "",
		},
		{
			name:    "Empty input",
			address: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveDublinZone(tt.address); got != tt.want {
				t.Errorf("DeriveDublinZone(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestCleanPropertyName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Type prefix and bedroom phrase stripped",
			raw:  "Apartment 2 Bedroom Oakwood House",
			want: "Oakwood",
		},
		{
			name: "Bed abbreviation stripped",
			raw:  "2 Bed Maple Gardens",
			want: "Maple Gardens",
		},
		{
			name: "BR abbreviation stripped",
			raw:  "3 BR Riverside Court",
			want: "Riverside Court",
		},
		{
			name: "Studio prefix stripped",
			raw:  "Studio Sunset Place",
			want: "Sunset Place",
		},
		{
			name: "Leading symbols and digits stripped",
			raw:  "** 42 Willow Park",
			want: "Willow Park",
		},
		{
			name: "Whitespace collapsed",
			raw:  "Griffith   Wood",
			want: "Griffith Wood",
		},
		{
			name: "Plain name untouched",
			raw:  "Sunset Apartments",
			want: "Sunset Apartments",
		},
		{
			name: "Empty after stripping",
			raw:  "Apartment",
			want: "Unknown Property",
		},
		{
			name: "Empty input",
			raw:  "",
			want: "Unknown Property",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPropertyName(tt.raw); got != tt.want {
				t.Errorf("CleanPropertyName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanAddress(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Apartment bedroom prefix stripped",
			raw:  "Apartment 1 Bedroom, Griffith Wood, Griffith Avenue, Drumcondra, Dublin 9",
			want: "Griffith Wood, Griffith Avenue, Drumcondra, Dublin 9",
		},
		{
			name: "Bedroom apartment prefix stripped",
			raw:  "2 Bedroom Apartment, Custom House Square, Dublin 1",
			want: "Custom House Square, Dublin 1",
		},
		{
			name: "Studio apartment prefix stripped",
			raw:  "Studio Apartment, Mayor Street Lower, Dublin 1",
			want: "Mayor Street Lower, Dublin 1",
		},
		{
			name: "Comma spacing normalized",
			raw:  "Spencer House ,Custom House Square,Dublin 1",
			want: "Spencer House, Custom House Square, Dublin 1",
		},
		{
			name: "Plain address untouched",
			raw:  "Willow Park, Dublin 14",
			want: "Willow Park, Dublin 14",
		},
		{
			name: "Empty after stripping falls back to raw",
			raw:  "Studio",
			want: "Studio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanAddress(tt.raw); got != tt.want {
				t.Errorf("CleanAddress(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
