package listing

import (
	"fmt"
	"regexp"
)

// DocumentExtractor pulls matches out of a raw document. The regex-based
// implementations below are inherently brittle against markup changes;
// keeping them behind this interface isolates the patterns from network
// code and lets a future structured-API replacement slot in unchanged.
type DocumentExtractor interface {
	Extract(doc string) []string
}

// knownCategorySegments are the listing path segments the platform uses.
const knownCategorySegments = `restaurant|place|hairshop|hospital|beauty|cafe`

var placeIDRe = regexp.MustCompile(
	`place\.naver\.com/(?:` + knownCategorySegments + `)/(\d+)`)

// PlaceIDExtractor extracts listing identifiers from a search-result
// document, in order of appearance. Duplicates are preserved; callers
// dedup as needed.
type PlaceIDExtractor struct{}

func (PlaceIDExtractor) Extract(doc string) []string {
	var ids []string
	for _, m := range placeIDRe.FindAllStringSubmatch(doc, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

// FeedDateExtractor extracts activity-post timestamps from a feed page by
// matching the identifier-scoped repeating cache marker. The structured
// API omits feed dates, so this is the only source for them.
type FeedDateExtractor struct {
	re *regexp.Regexp
}

// NewFeedDateExtractor builds an extractor scoped to one listing identifier.
func NewFeedDateExtractor(placeID string) *FeedDateExtractor {
	pattern := fmt.Sprintf(`(?s)"Feed:%s_\d+".*?"relativeCreated":"([^"]+)"`,
		regexp.QuoteMeta(placeID))
	return &FeedDateExtractor{re: regexp.MustCompile(pattern)}
}

func (e *FeedDateExtractor) Extract(doc string) []string {
	var dates []string
	for _, m := range e.re.FindAllStringSubmatch(doc, -1) {
		dates = append(dates, m[1])
	}
	return dates
}
