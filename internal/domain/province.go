package domain

import (
	"regexp"
	"strings"
)

// Province is a static reference entity. The table below is the single
// source of truth: exactly 13 entries, ordered alphabetically by full name.
// ResolveProvince scans in this order, so the first entry wins when a
// message mentions more than one province.
type Province struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

var Provinces = []Province{
	{Code: "AB", FullName: "Alberta"},
	{Code: "BC", FullName: "British Columbia"},
	{Code: "MB", FullName: "Manitoba"},
	{Code: "NB", FullName: "New Brunswick"},
	{Code: "NL", FullName: "Newfoundland & Labrador"},
	{Code: "NT", FullName: "Northwest Territories"},
	{Code: "NS", FullName: "Nova Scotia"},
	{Code: "NU", FullName: "Nunavut"},
	{Code: "ON", FullName: "Ontario"},
	{Code: "PE", FullName: "Prince Edward Island"},
	{Code: "QC", FullName: "Quebec"},
	{Code: "SK", FullName: "Saskatchewan"},
	{Code: "YT", FullName: "Yukon"},
}

// codePatterns match 2-letter codes on word boundaries only, otherwise
// the "on" inside "monday" or "carbon" would resolve Ontario.
var codePatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(Provinces))
	for _, p := range Provinces {
		patterns[p.Code] = regexp.MustCompile(`(?i)\b` + p.Code + `\b`)
	}
	return patterns
}()

// ResolveProvince extracts a province reference from free text. Full names
// are matched first (case-insensitive substring), then 2-letter codes on
// word boundaries. Returns ok=false when nothing matches; callers treat
// that as "no province named", not as an error.
func ResolveProvince(text string) (*Province, bool) {
	lowered := strings.ToLower(text)
	for i := range Provinces {
		if strings.Contains(lowered, strings.ToLower(Provinces[i].FullName)) {
			return &Provinces[i], true
		}
	}

	for i := range Provinces {
		if codePatterns[Provinces[i].Code].MatchString(text) {
			return &Provinces[i], true
		}
	}

	return nil, false
}

// ProvinceByCode looks up a province by its canonical 2-letter code.
func ProvinceByCode(code string) (*Province, bool) {
	upper := strings.ToUpper(code)
	for i := range Provinces {
		if Provinces[i].Code == upper {
			return &Provinces[i], true
		}
	}
	return nil, false
}
