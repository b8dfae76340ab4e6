// Package scorer computes the 100-point listing-quality score: six
// independent, stateless category scorers over a PlaceRecord. Rule-based
// on purpose, no model calls, so the same record always scores the same.
package scorer

import (
	"time"

	"github.com/placepulse/place-audit/internal/model"
)

// Engine scores listing records. The clock is injectable because the
// activity scorer ages free-text dates against "now".
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow fixes the engine's clock. Used by tests and replay tooling.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a scoring engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the six category scores and their total.
// Scoring is total: every record yields a result, never an error.
func (e *Engine) Score(rec *model.PlaceRecord) *model.ScoreResult {
	basicInfo := scoreBasicInfo(rec)
	photos := scorePhotos(rec)
	reviews := scoreReviews(rec)
	menu := scoreMenu(rec)
	keywords := scoreKeywords(rec)
	activity := scoreActivity(rec, e.now())

	return &model.ScoreResult{
		Total: basicInfo.Score + photos.Score + reviews.Score +
			menu.Score + keywords.Score + activity.Score,
		Breakdown: model.ScoreBreakdown{
			BasicInfo: basicInfo.Score,
			Photos:    photos.Score,
			Reviews:   reviews.Score,
			Menu:      menu.Score,
			Keywords:  keywords.Score,
			Activity:  activity.Score,
		},
		Details: model.ScoreDetails{
			BasicInfo: basicInfo,
			Photos:    photos,
			Reviews:   reviews,
			Menu:      menu,
			Keywords:  keywords,
			Activity:  activity,
		},
	}
}

func category(score, max int, strengths, improvements []string) model.CategoryScore {
	score = clamp(score, 0, max)
	return model.CategoryScore{
		Score:        score,
		Max:          max,
		Status:       model.StatusFor(score, max),
		Strengths:    strengths,
		Improvements: improvements,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
