package scorer

import (
	"fmt"
	"math"

	"github.com/placepulse/place-audit/internal/model"
)

// scoreReviews covers review volume, rating, and owner engagement (max 25):
// count up to +8, average rating up to +5, owner reply rate up to +10, and
// a +2 bonus when at least half the fetched sample carries a photo.
func scoreReviews(rec *model.PlaceRecord) model.CategoryScore {
	score := 0
	strengths := []string{}
	improvements := []string{}
	stats := rec.Reviews

	switch {
	case stats.Total >= 100:
		score += 8
		strengths = append(strengths, fmt.Sprintf("리뷰가 %d개로 매우 많습니다", stats.Total))
	case stats.Total >= 50:
		score += 6
		strengths = append(strengths, fmt.Sprintf("리뷰가 %d개 있습니다", stats.Total))
	case stats.Total >= 20:
		score += 4
		improvements = append(improvements,
			fmt.Sprintf("리뷰가 %d개에요. 리뷰 이벤트로 50개 이상 모아보세요", stats.Total))
	case stats.Total >= 5:
		score += 2
		improvements = append(improvements,
			fmt.Sprintf("리뷰가 %d개로 부족해요. 방문 고객에게 리뷰를 부탁해보세요", stats.Total))
	default:
		improvements = append(improvements, "리뷰가 거의 없습니다. 리뷰 수집이 시급해요")
	}

	switch {
	case stats.AvgRating >= 4.5:
		score += 5
		strengths = append(strengths, fmt.Sprintf("평균 별점 %.1f점으로 우수합니다", stats.AvgRating))
	case stats.AvgRating >= 4.0:
		score += 4
		strengths = append(strengths, fmt.Sprintf("평균 별점 %.1f점으로 양호합니다", stats.AvgRating))
	case stats.AvgRating >= 3.5:
		score += 2
		improvements = append(improvements,
			fmt.Sprintf("평균 별점 %.1f점이에요. 서비스 개선으로 4점 이상을 목표해보세요", stats.AvgRating))
	case stats.AvgRating > 0:
		score++
		improvements = append(improvements,
			fmt.Sprintf("평균 별점 %.1f점으로 낮은 편이에요. 불만 사항을 파악해보세요", stats.AvgRating))
	}

	// Reply rate is over the fetched sample; see ReviewStats.OwnerReplyRate.
	replyPct := int(math.Round(stats.OwnerReplyRate * 100))
	switch {
	case replyPct >= 80:
		score += 10
		strengths = append(strengths, fmt.Sprintf("사장님 답변률 %d%%로 훌륭합니다", replyPct))
	case replyPct >= 50:
		score += 7
		strengths = append(strengths, fmt.Sprintf("사장님 답변률 %d%%입니다", replyPct))
		improvements = append(improvements, "모든 리뷰에 답변하면 재방문율이 올라가요")
	case replyPct >= 20:
		score += 4
		improvements = append(improvements,
			fmt.Sprintf("사장님 답변률이 %d%%에요. 50%% 이상으로 올려보세요", replyPct))
	case replyPct > 0:
		score += 2
		improvements = append(improvements,
			fmt.Sprintf("사장님 답변률이 %d%%로 매우 낮아요. 리뷰 답변은 검색 순위에 직접 영향을 줍니다", replyPct))
	default:
		improvements = append(improvements, "사장님 답변이 없습니다! 리뷰에 답변하면 검색 순위가 크게 올라가요")
	}

	if len(stats.Recent) > 0 {
		withPhoto := 0
		for _, r := range stats.Recent {
			if r.HasPhoto {
				withPhoto++
			}
		}
		photoRate := float64(withPhoto) / float64(len(stats.Recent))
		if photoRate >= 0.5 {
			score += 2
			strengths = append(strengths,
				fmt.Sprintf("최근 리뷰의 %d%%가 사진을 포함하고 있습니다", int(math.Round(photoRate*100))))
		}
	}

	return category(score, 25, strengths, improvements)
}
