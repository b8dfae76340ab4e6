package scorer

import (
	"fmt"
	"time"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/textparse"
)

// scoreActivity covers operational freshness (max 10): dated feed posts up
// to +5 and recency of the latest activity up to +5. Recency prefers feed
// dates and lastUpdate; review dates are a fallback only when neither
// parses.
func scoreActivity(rec *model.PlaceRecord, now time.Time) model.CategoryScore {
	score := 0
	strengths := []string{}
	improvements := []string{}

	// Placeholder entries (activity known, date unknown) count toward
	// existence but not toward the dated-post buckets.
	feedCount := 0
	hasFeed := false
	for _, f := range rec.Feeds {
		if f.Date != "" {
			feedCount++
		}
		if f.Category == "feed" {
			hasFeed = true
		}
	}

	switch {
	case feedCount >= 5:
		score += 5
		strengths = append(strengths, fmt.Sprintf("소식이 %d개 등록되어 활발하게 운영 중입니다", feedCount))
	case feedCount >= 2:
		score += 3
		strengths = append(strengths, fmt.Sprintf("소식이 %d개 등록되어 있습니다", feedCount))
		improvements = append(improvements, "소식을 주 1회 이상 올리면 검색 순위에 유리해요")
	case feedCount >= 1 || hasFeed:
		score++
		strengths = append(strengths, "소식이 등록되어 있습니다")
		improvements = append(improvements, "소식을 정기적으로 올리면 검색 순위에 유리해요")
	default:
		improvements = append(improvements, "소식이 없습니다! 주 1회 소식 올리기가 순위 상승의 핵심이에요")
	}

	recentDays := -1
	minDays := func(s string) {
		d, ok := textparse.DaysSince(s, now)
		if ok && (recentDays < 0 || d < recentDays) {
			recentDays = d
		}
	}
	for _, f := range rec.Feeds {
		if f.Date != "" {
			minDays(f.Date)
		}
	}
	if rec.LastUpdate != "" {
		minDays(rec.LastUpdate)
	}
	if recentDays < 0 {
		for _, r := range rec.Reviews.Recent {
			minDays(r.Date)
		}
	}

	switch {
	case recentDays < 0:
		improvements = append(improvements, "최근 활동 이력을 확인할 수 없습니다")
	case recentDays <= 7:
		score += 5
		strengths = append(strengths, "최근 1주일 이내에 활동이 있습니다")
	case recentDays <= 14:
		score += 4
		strengths = append(strengths, "최근 2주 이내에 활동이 있습니다")
	case recentDays <= 30:
		score += 3
		improvements = append(improvements, "마지막 활동이 2주 이상 전이에요. 소식을 올려주세요")
	case recentDays <= 90:
		score++
		improvements = append(improvements,
			fmt.Sprintf("마지막 활동이 약 %d개월 전이에요. 검색 순위가 떨어질 수 있어요", monthsOf(recentDays)))
	default:
		improvements = append(improvements,
			fmt.Sprintf("마지막 활동이 %d개월 이상 전이에요! 빨리 소식을 올려주세요", monthsOf(recentDays)))
	}

	return category(score, 10, strengths, improvements)
}

func monthsOf(days int) int {
	return int(float64(days)/30 + 0.5)
}
