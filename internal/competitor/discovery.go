package competitor

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/placepulse/place-audit/internal/geo"
	"github.com/placepulse/place-audit/internal/listing"
	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/scorer"
	"github.com/placepulse/place-audit/pkg/naver"
)

// UnknownDistance marks a competitor kept without radius filtering because
// the subject had no coordinates.
const UnknownDistance = 999

// DefaultRadiusKm is the discovery radius.
const DefaultRadiusKm = 1.0

// Subject describes the merchant competitors are discovered around.
// SecondaryAddress is the optional lot-number-style address; its finer
// sub-district token produces the highest-priority queries.
type Subject struct {
	PlaceID          string
	Category         string
	Address          string
	Name             string
	Lat              *float64
	Lng              *float64
	SecondaryAddress string
}

// SubjectFromRecord builds a discovery subject from an acquired record.
func SubjectFromRecord(placeID string, rec *model.PlaceRecord, secondaryAddress string) Subject {
	return Subject{
		PlaceID:          placeID,
		Category:         rec.Category,
		Address:          rec.Address,
		Name:             rec.Name,
		Lat:              rec.Lat,
		Lng:              rec.Lng,
		SecondaryAddress: secondaryAddress,
	}
}

// Discovery finds, fetches, and scores nearby same-category listings.
type Discovery struct {
	client    naver.Client
	pacer     listing.Pacer
	fetcher   *listing.Fetcher
	engine    *scorer.Engine
	extractor listing.DocumentExtractor
	radiusKm  float64
	workers   int
}

// Option configures a Discovery.
type Option func(*Discovery)

// WithRadiusKm overrides the discovery radius.
func WithRadiusKm(km float64) Option {
	return func(d *Discovery) { d.radiusKm = km }
}

// WithWorkers sets the candidate-fetch concurrency. The pacer still
// enforces the global inter-request interval across all workers, so this
// only overlaps non-network work.
func WithWorkers(n int) Option {
	return func(d *Discovery) {
		if n > 0 {
			d.workers = n
		}
	}
}

// WithEngine overrides the scoring engine. Used by tests to fix the clock.
func WithEngine(e *scorer.Engine) Option {
	return func(d *Discovery) { d.engine = e }
}

// NewDiscovery creates a Discovery. The pacer must be the same one used by
// the subject's acquisition so the inter-request interval holds across the
// whole run.
func NewDiscovery(client naver.Client, pacer listing.Pacer, opts ...Option) *Discovery {
	d := &Discovery{
		client:    client,
		pacer:     pacer,
		fetcher:   listing.NewFetcher(client, pacer),
		engine:    scorer.NewEngine(),
		extractor: listing.PlaceIDExtractor{},
		radiusKm:  DefaultRadiusKm,
		workers:   1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover returns the scored competitors within the radius, nearest first.
// Per-candidate failures are logged and skipped; only context cancellation
// aborts the batch. An empty result is not an error.
func (d *Discovery) Discover(ctx context.Context, sub Subject) ([]model.CompetitorResult, error) {
	ids := d.searchCandidates(ctx, sub)
	if len(ids) == 0 {
		return nil, ctx.Err()
	}

	// Indexed so discovery order is preserved for equal distances.
	found := make([]*model.CompetitorResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i, id := range ids {
		g.Go(func() error {
			result, err := d.evaluate(gctx, sub, id)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				zap.L().Warn("competitor: candidate skipped",
					zap.String("place_id", id),
					zap.Error(err),
				)
				return nil
			}
			found[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]model.CompetitorResult, 0, len(found))
	for _, r := range found {
		if r != nil {
			results = append(results, *r)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	zap.L().Info("competitor: discovery complete",
		zap.Int("candidates", len(ids)),
		zap.Int("within_radius", len(results)),
	)
	return results, nil
}

// searchCandidates runs the prioritized queries and accumulates distinct
// listing identifiers, excluding the subject's own. Individual query
// failures move on to the next query.
func (d *Discovery) searchCandidates(ctx context.Context, sub Subject) []string {
	queries := BuildQueries(sub.Category, sub.Address, sub.Name, sub.SecondaryAddress)
	seen := make(map[string]bool)
	var ids []string
	for _, query := range queries {
		if err := d.pacer.Wait(ctx); err != nil {
			return ids
		}
		html, err := d.client.SearchHTML(ctx, query)
		if err != nil {
			zap.L().Debug("competitor: search query failed",
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		for _, id := range d.extractor.Extract(html) {
			if id == sub.PlaceID || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// evaluate fetches, normalizes, scores, and radius-filters one candidate.
// (nil, nil) means excluded, not failed.
func (d *Discovery) evaluate(ctx context.Context, sub Subject, placeID string) (*model.CompetitorResult, error) {
	detail, err := d.fetcher.FetchByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}

	feedDates := d.fetcher.FeedDates(ctx, placeID, "restaurant")
	rec := listing.Normalize(detail, feedDates)

	distance := float64(UnknownDistance)
	if sub.Lat != nil && sub.Lng != nil {
		if !rec.HasCoordinates() {
			zap.L().Debug("competitor: excluded, no coordinates",
				zap.String("place_id", placeID),
				zap.String("name", rec.Name),
			)
			return nil, nil
		}
		distance = geo.DistanceKm(*sub.Lat, *sub.Lng, *rec.Lat, *rec.Lng)
		if distance > d.radiusKm {
			return nil, nil
		}
	}

	return &model.CompetitorResult{
		PlaceID:    placeID,
		Record:     rec,
		Score:      d.engine.Score(rec),
		DistanceKm: distance,
	}, nil
}
