// Package textparse holds the free-text heuristics the pipeline depends
// on: extracting location and category tokens from Korean addresses, names,
// and category strings, and parsing the source platform's date formats.
// Each heuristic is a small pure function so drift is testable in isolation.
package textparse

import (
	"regexp"
	"strings"
)

var (
	// "마포구 합정동", "수원시 팔달구" — district (구/군) plus optional
	// finer sub-district (동/읍/면/리).
	districtRe = regexp.MustCompile(`(\S+[구군])\s*(\S+[동읍면리])?`)

	// Full "{city} {district} {sub-district?}" pattern used by the keyword
	// scorer, anchored on the city suffix (시/군).
	cityDistrictRe = regexp.MustCompile(`(\S+[시군])\s+(\S+[구군])\s*(\S+[동읍면리])?`)

	// Trailing branch qualifier on a display name: "긴자료코 숙대점" → "숙대".
	areaHintRe = regexp.MustCompile(`\s+(\S+?)(?:점|역점|역직영점|직영점|본점)$`)
)

// Districts extracts the district (구/군) and sub-district (동/읍/면/리)
// tokens from an address. Either may be empty.
func Districts(address string) (district, subDistrict string) {
	m := districtRe.FindStringSubmatch(address)
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}

// CityDistricts matches the "{city} {district} {sub-district?}" address
// shape and returns the district and optional sub-district tokens.
// ok is false when the address does not match the pattern.
func CityDistricts(address string) (district, subDistrict string, ok bool) {
	m := cityDistrictRe.FindStringSubmatch(address)
	if m == nil {
		return "", "", false
	}
	return m[2], m[3], true
}

// AreaHint extracts the area token preceding a trailing branch suffix from
// a display name ("OOO 신촌점" → "신촌"). Returns "" when absent.
func AreaHint(name string) string {
	m := areaHintRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

// MainCategory returns the primary business type from a slash/comma/arrow
// delimited category string: the last token, falling back to the first,
// falling back to the whole string.
func MainCategory(category string) string {
	parts := splitTrim(category, ">,/")
	if len(parts) == 0 {
		return category
	}
	return parts[len(parts)-1]
}

// CategoryTokens splits a category string on comma, slash, arrow, and
// whitespace, discarding tokens shorter than two characters (runes).
// Used by the keyword recommender.
func CategoryTokens(category string) []string {
	return minLenTokens(splitTrim(category, ">,/ \t"))
}

// CategoryWords splits a category string on comma, slash, and whitespace
// only, discarding tokens shorter than two characters (runes). Unlike
// CategoryTokens it keeps ">"-joined hierarchy segments intact; the scorer's
// introduction check treats such a segment as one literal phrase.
func CategoryWords(category string) []string {
	return minLenTokens(splitTrim(category, ",/ \t"))
}

func minLenTokens(parts []string) []string {
	var out []string
	for _, p := range parts {
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

func splitTrim(s, cutset string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(cutset, r)
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
