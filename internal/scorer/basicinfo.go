package scorer

import (
	"fmt"

	"github.com/placepulse/place-audit/internal/model"
)

// scoreBasicInfo covers the listing fundamentals (max 15): hours +4,
// address +3, phone +3, introduction length +0/+1/+3/+5.
func scoreBasicInfo(rec *model.PlaceRecord) model.CategoryScore {
	score := 0
	strengths := []string{}
	improvements := []string{}

	if len(rec.Hours) > 0 {
		score += 4
		strengths = append(strengths, "영업시간이 등록되어 있습니다")
	} else {
		improvements = append(improvements, "영업시간을 등록하면 고객이 방문 전 확인할 수 있어요")
	}

	if rec.Address != "" {
		score += 3
		strengths = append(strengths, "주소가 정확하게 등록되어 있습니다")
	} else {
		improvements = append(improvements, "주소를 등록해 지도 검색에 노출되게 해주세요")
	}

	if rec.Phone != "" {
		score += 3
		strengths = append(strengths, "전화번호가 등록되어 있습니다")
	} else {
		improvements = append(improvements, "전화번호를 등록하면 전화 문의가 늘어날 수 있어요")
	}

	if intro := rec.Intro(); intro != "" {
		n := len([]rune(intro))
		switch {
		case n >= 50:
			score += 5
			strengths = append(strengths, fmt.Sprintf("소개글이 충분히 작성되어 있습니다 (%d자)", n))
		case n >= 20:
			score += 3
			strengths = append(strengths, "소개글이 등록되어 있습니다")
			improvements = append(improvements,
				fmt.Sprintf("소개글을 좀 더 보강하면 좋아요 (현재 %d자 → 50자 이상 권장)", n))
		default:
			score++
			improvements = append(improvements,
				fmt.Sprintf("소개글이 너무 짧아요 (현재 %d자 → 50자 이상으로 늘려보세요)", n))
		}
	} else {
		improvements = append(improvements, "소개글을 작성하면 검색 노출에 큰 도움이 됩니다 (50자 이상 권장)")
	}

	return category(score, 15, strengths, improvements)
}
