package scorer

import (
	"fmt"
	"strings"

	"github.com/placepulse/place-audit/internal/model"
)

// scorePhotos covers business photos only (max 20): count buckets up to
// +15, category variety up to +5. Visitor photos count toward the review
// category, not here.
func scorePhotos(rec *model.PlaceRecord) model.CategoryScore {
	score := 0
	strengths := []string{}
	improvements := []string{}
	biz := rec.Photos.Business

	switch {
	case biz >= 25:
		score += 15
		strengths = append(strengths, fmt.Sprintf("업체 사진이 %d장으로 충분합니다", biz))
	case biz >= 15:
		score += 12
		strengths = append(strengths, fmt.Sprintf("업체 사진이 %d장 등록되어 있습니다", biz))
		improvements = append(improvements, fmt.Sprintf("사진을 %d장 더 올리면 만점이에요", 25-biz))
	case biz >= 5:
		score += 8
		improvements = append(improvements,
			fmt.Sprintf("업체 사진이 %d장이에요. 15장 이상 올리면 노출이 늘어납니다", biz))
	case biz > 0:
		score += 4
		improvements = append(improvements,
			fmt.Sprintf("업체 사진이 %d장뿐이에요. 최소 5장 이상 올려주세요", biz))
	default:
		improvements = append(improvements, "업체 사진이 없습니다! 대표 사진부터 올려주세요")
	}

	cats := len(rec.Photos.Categories)
	switch {
	case cats >= 4:
		score += 5
		strengths = append(strengths, fmt.Sprintf("사진 카테고리가 %d종으로 다양합니다 (%s)",
			cats, strings.Join(rec.Photos.Categories, ", ")))
	case cats >= 2:
		score += 3
		improvements = append(improvements, "메뉴, 매장 내부, 외부 등 다양한 카테고리 사진을 추가해보세요")
	case cats == 1:
		score++
		improvements = append(improvements,
			"사진 카테고리가 1종뿐이에요. 음식, 매장, 분위기 등 다양하게 올려주세요")
	case biz > 0:
		// Photos exist but carry no category labels: uncategorized, not
		// the zero case.
		score += 2
	}

	return category(score, 20, strengths, improvements)
}
