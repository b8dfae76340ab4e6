// Package listing acquires and normalizes one merchant's listing snapshot:
// identifier resolution with search fallback, the auxiliary feed-date
// fetch, and normalization of the structured response into a PlaceRecord.
package listing

import (
	"context"
	"net/url"
	"regexp"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/pkg/naver"
)

// Sentinel failures for the acquisition taxonomy. Both are user-actionable;
// transport and parse failures are wrapped separately and are fatal.
var (
	// ErrNotFound means the listing was absent and every fallback search
	// also failed.
	ErrNotFound = eris.New("listing: not found")
	// ErrNoMatch means a free-text search produced no listing identifier.
	ErrNoMatch = eris.New("listing: no search match")
)

var inputPathRe = regexp.MustCompile(`/(` + knownCategorySegments + `)/(\d+)`)
var numericRe = regexp.MustCompile(`^\d+$`)

// ParseInput resolves an identifier or listing URL to (placeID, category).
// A bare numeric identifier gets the generic "place" category.
func ParseInput(input string) (placeID, category string, err error) {
	if numericRe.MatchString(input) {
		return input, "place", nil
	}
	u, err := url.Parse(input)
	if err != nil {
		return "", "", eris.Wrapf(err, "listing: invalid input %q", input)
	}
	m := inputPathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return "", "", eris.Errorf("listing: not a listing URL: %s", input)
	}
	return m[2], m[1], nil
}

// Fetcher resolves identifiers, URLs, or free-text names to a structured
// listing response.
type Fetcher struct {
	client    naver.Client
	pacer     Pacer
	extractor DocumentExtractor
}

// NewFetcher creates a Fetcher. The pacer is shared with every other fetch
// path of the run.
func NewFetcher(client naver.Client, pacer Pacer) *Fetcher {
	return &Fetcher{
		client:    client,
		pacer:     pacer,
		extractor: PlaceIDExtractor{},
	}
}

// Resolved is the outcome of an acquisition before normalization.
type Resolved struct {
	PlaceID  string
	Category string
	Detail   *naver.PlaceDetail
}

// Fetch resolves an identifier or URL and runs the structured query.
// When the platform reports the listing absent, it retries via generic
// identifier-lookup search phrases; the first candidate whose detail query
// succeeds wins. All fallbacks exhausted yields ErrNotFound.
func (f *Fetcher) Fetch(ctx context.Context, input string) (*Resolved, error) {
	placeID, category, err := ParseInput(input)
	if err != nil {
		return nil, err
	}

	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	detail, err := f.client.PlaceDetail(ctx, placeID)
	if err != nil {
		return nil, eris.Wrap(err, "listing: detail query")
	}
	if detail != nil {
		return &Resolved{PlaceID: placeID, Category: category, Detail: detail}, nil
	}

	// The identifier from the URL can be stale; look it up by phrase.
	for _, query := range []string{
		"네이버플레이스 " + placeID,
		"naver place " + placeID,
	} {
		foundID, err := f.searchPlaceID(ctx, query)
		if err != nil {
			zap.L().Debug("listing: fallback search failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		if foundID == "" || foundID == placeID {
			continue
		}
		if err := f.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		detail, err := f.client.PlaceDetail(ctx, foundID)
		if err != nil {
			zap.L().Debug("listing: fallback detail failed",
				zap.String("place_id", foundID),
				zap.Error(err),
			)
			continue
		}
		if detail != nil {
			return &Resolved{PlaceID: foundID, Category: category, Detail: detail}, nil
		}
	}

	return nil, eris.Wrapf(ErrNotFound, "listing: id %s", placeID)
}

// FetchByName searches for a merchant by display name and fetches the
// first matched identifier. ErrNoMatch when the search yields nothing;
// a failing structured query afterwards is fatal.
func (f *Fetcher) FetchByName(ctx context.Context, name string) (*Resolved, error) {
	foundID, err := f.searchPlaceID(ctx, name)
	if err != nil {
		return nil, eris.Wrap(err, "listing: name search")
	}
	if foundID == "" {
		return nil, eris.Wrapf(ErrNoMatch, "listing: name %q", name)
	}

	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	detail, err := f.client.PlaceDetail(ctx, foundID)
	if err != nil {
		return nil, eris.Wrap(err, "listing: detail query")
	}
	if detail == nil {
		return nil, eris.Wrapf(ErrNotFound, "listing: id %s", foundID)
	}
	return &Resolved{PlaceID: foundID, Category: "restaurant", Detail: detail}, nil
}

// FetchByID runs the structured query for a known identifier with no
// fallback. Used by competitor discovery, where absent candidates are
// simply skipped.
func (f *Fetcher) FetchByID(ctx context.Context, placeID string) (*naver.PlaceDetail, error) {
	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	return f.client.PlaceDetail(ctx, placeID)
}

func (f *Fetcher) searchPlaceID(ctx context.Context, query string) (string, error) {
	if err := f.pacer.Wait(ctx); err != nil {
		return "", err
	}
	html, err := f.client.SearchHTML(ctx, query)
	if err != nil {
		return "", err
	}
	ids := f.extractor.Extract(html)
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// FeedDates fetches the activity-feed page and extracts raw timestamp
// strings. Explicitly non-blocking: any fetch or parse failure degrades to
// an empty list and must never fail the acquisition.
func (f *Fetcher) FeedDates(ctx context.Context, placeID, category string) []string {
	if err := f.pacer.Wait(ctx); err != nil {
		return nil
	}
	html, err := f.client.FeedHTML(ctx, placeID, category)
	if err != nil {
		zap.L().Debug("listing: feed fetch failed",
			zap.String("place_id", placeID),
			zap.Error(err),
		)
		return nil
	}
	return NewFeedDateExtractor(placeID).Extract(html)
}

// Acquire runs the full path for one listing: fetch, feed dates, normalize.
func (f *Fetcher) Acquire(ctx context.Context, input string) (string, *model.PlaceRecord, error) {
	resolved, err := f.Fetch(ctx, input)
	if err != nil {
		return "", nil, err
	}
	feedDates := f.FeedDates(ctx, resolved.PlaceID, resolved.Category)
	return resolved.PlaceID, Normalize(resolved.Detail, feedDates), nil
}

// AcquireByName is Acquire for a free-text merchant name.
func (f *Fetcher) AcquireByName(ctx context.Context, name string) (string, *model.PlaceRecord, error) {
	resolved, err := f.FetchByName(ctx, name)
	if err != nil {
		return "", nil, err
	}
	feedDates := f.FeedDates(ctx, resolved.PlaceID, resolved.Category)
	return resolved.PlaceID, Normalize(resolved.Detail, feedDates), nil
}
