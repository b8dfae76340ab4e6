package model

import "time"

// CompetitorResult pairs a discovered competitor's snapshot with its score
// and distance from the subject. DistanceKm is 999 when the subject had no
// coordinates and radius filtering was skipped.
type CompetitorResult struct {
	PlaceID    string       `json:"place_id"`
	Record     *PlaceRecord `json:"record"`
	Score      *ScoreResult `json:"score"`
	DistanceKm float64      `json:"distance_km"`
}

// Report is the persisted output of one acquisition: the record/score pair
// plus any competitors discovered in the same run. This is the pipeline's
// external contract; downstream consumers never see raw fetch responses.
type Report struct {
	ID          string             `json:"id"`
	PlaceID     string             `json:"place_id"`
	Name        string             `json:"name"`
	TotalScore  int                `json:"total_score"`
	Record      *PlaceRecord       `json:"record"`
	Score       *ScoreResult       `json:"score"`
	Competitors []CompetitorResult `json:"competitors,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}
