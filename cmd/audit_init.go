package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/placepulse/place-audit/internal/competitor"
	"github.com/placepulse/place-audit/internal/keyword"
	"github.com/placepulse/place-audit/internal/listing"
	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/scorer"
	"github.com/placepulse/place-audit/internal/store"
	anthropicpkg "github.com/placepulse/place-audit/pkg/anthropic"
	"github.com/placepulse/place-audit/pkg/naver"
)

// auditEnv holds the initialized store, clients, and pipeline stages shared
// by the analyze/competitors/keywords/serve commands.
type auditEnv struct {
	Store     store.Store
	Fetcher   *listing.Fetcher
	Discovery *competitor.Discovery
	Analyzer  *keyword.Analyzer
	Engine    *scorer.Engine
}

// Close releases resources held by the audit environment.
func (env *auditEnv) Close() {
	if env.Store != nil {
		_ = env.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			path = "place-audit.db"
		}
		return store.NewSQLite(path)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initAudit sets up the store, the platform client, and the pipeline
// stages. Callers should defer env.Close().
func initAudit(ctx context.Context) (*auditEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	clientOpts := []naver.Option{
		naver.WithGraphQLURL(cfg.Naver.GraphQLURL),
		naver.WithSearchBaseURL(cfg.Naver.SearchBaseURL),
		naver.WithPlaceBaseURL(cfg.Naver.PlaceBaseURL),
		naver.WithTimeout(time.Duration(cfg.Naver.TimeoutSecs) * time.Second),
	}
	if cfg.Naver.UserAgent != "" {
		clientOpts = append(clientOpts, naver.WithUserAgent(cfg.Naver.UserAgent))
	}
	client := naver.NewClient(clientOpts...)

	// One pacer for the whole run so the inter-request interval holds
	// across acquisition and competitor fetches alike.
	pacer := listing.NewPacer(cfg.Naver.MinInterval())

	discoveryOpts := []competitor.Option{
		competitor.WithWorkers(cfg.Competitor.Workers),
	}
	if cfg.Competitor.RadiusKm > 0 {
		discoveryOpts = append(discoveryOpts, competitor.WithRadiusKm(cfg.Competitor.RadiusKm))
	}

	var analyzerOpts []keyword.Option
	if cfg.Anthropic.Key != "" {
		analyzerOpts = append(analyzerOpts,
			keyword.WithModel(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model))
	}

	return &auditEnv{
		Store:     st,
		Fetcher:   listing.NewFetcher(client, pacer),
		Discovery: competitor.NewDiscovery(client, pacer, discoveryOpts...),
		Analyzer:  keyword.NewAnalyzer(analyzerOpts...),
		Engine:    scorer.NewEngine(),
	}, nil
}

// acquired is one resolved, normalized listing plus the raw lot-number
// address needed for competitor query generation. The record itself keeps
// only the display address.
type acquired struct {
	PlaceID          string
	Record           *model.PlaceRecord
	SecondaryAddress string
}

// acquire resolves either a free-text name or an identifier/URL input,
// fetches the feed dates, and normalizes the result.
func (env *auditEnv) acquire(ctx context.Context, input, name string) (*acquired, error) {
	var resolved *listing.Resolved
	var err error
	if name != "" {
		resolved, err = env.Fetcher.FetchByName(ctx, name)
	} else {
		resolved, err = env.Fetcher.Fetch(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	feedDates := env.Fetcher.FeedDates(ctx, resolved.PlaceID, resolved.Category)
	return &acquired{
		PlaceID:          resolved.PlaceID,
		Record:           listing.Normalize(resolved.Detail, feedDates),
		SecondaryAddress: resolved.Detail.Base.Address,
	}, nil
}

// buildReport runs the full pipeline for one listing: acquire, score, and
// optionally discover competitors.
func (env *auditEnv) buildReport(ctx context.Context, input, name string, withCompetitors bool) (*model.Report, error) {
	acq, err := env.acquire(ctx, input, name)
	if err != nil {
		return nil, err
	}
	score := env.Engine.Score(acq.Record)

	report := &model.Report{
		PlaceID:    acq.PlaceID,
		Name:       acq.Record.Name,
		TotalScore: score.Total,
		Record:     acq.Record,
		Score:      score,
	}

	if withCompetitors {
		sub := competitor.SubjectFromRecord(acq.PlaceID, acq.Record, acq.SecondaryAddress)
		competitors, err := env.Discovery.Discover(ctx, sub)
		if err != nil {
			return nil, eris.Wrap(err, "competitor discovery")
		}
		report.Competitors = competitors
	}

	return report, nil
}
