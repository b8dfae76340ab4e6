// Package store persists audit reports. Two backends share one interface:
// SQLite for single-operator CLI use and Postgres for the served API.
package store

import (
	"context"
	"time"

	"github.com/placepulse/place-audit/internal/model"
)

// ReportFilter specifies criteria for listing reports.
type ReportFilter struct {
	PlaceID string `json:"place_id,omitempty"`
	Limit   int    `json:"limit,omitempty"`
	Offset  int    `json:"offset,omitempty"`
}

// ReportSummary is the list-view projection of a report, without the
// record/score payload.
type ReportSummary struct {
	ID         string    `json:"id"`
	PlaceID    string    `json:"place_id"`
	Name       string    `json:"name"`
	TotalScore int       `json:"total_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the persistence interface for audit reports.
// Getters return (nil, nil) when no matching report exists.
type Store interface {
	SaveReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, id string) (*model.Report, error)
	LatestReport(ctx context.Context, placeID string) (*model.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]ReportSummary, error)
	DeleteReport(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 50
