package model

// Status grades a category score relative to its maximum.
type Status string

const (
	StatusBad     Status = "bad"
	StatusWarning Status = "warning"
	StatusGood    Status = "good"
)

// StatusFor derives the status from a score/max ratio:
// >=70% good, >=40% warning, otherwise bad.
func StatusFor(score, max int) Status {
	ratio := float64(score) / float64(max)
	switch {
	case ratio >= 0.7:
		return StatusGood
	case ratio >= 0.4:
		return StatusWarning
	default:
		return StatusBad
	}
}

// CategoryScore is the result of one category scorer.
type CategoryScore struct {
	Score        int      `json:"score"`
	Max          int      `json:"max"`
	Status       Status   `json:"status"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// ScoreBreakdown lists the six category scores by name.
type ScoreBreakdown struct {
	BasicInfo int `json:"basic_info"` // max 15
	Photos    int `json:"photos"`     // max 20
	Reviews   int `json:"reviews"`    // max 25
	Menu      int `json:"menu"`       // max 15
	Keywords  int `json:"keywords"`   // max 15
	Activity  int `json:"activity"`   // max 10
}

// ScoreDetails carries the full per-category results.
type ScoreDetails struct {
	BasicInfo CategoryScore `json:"basic_info"`
	Photos    CategoryScore `json:"photos"`
	Reviews   CategoryScore `json:"reviews"`
	Menu      CategoryScore `json:"menu"`
	Keywords  CategoryScore `json:"keywords"`
	Activity  CategoryScore `json:"activity"`
}

// ScoreResult is a pure function of a PlaceRecord: six category scores
// summing to Total (0-100).
type ScoreResult struct {
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Details   ScoreDetails   `json:"details"`
}
