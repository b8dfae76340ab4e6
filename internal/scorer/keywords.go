package scorer

import (
	"fmt"
	"strings"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/textparse"
)

// scoreKeywords covers search-keyword optimization (max 15): extracted
// review keywords up to +5, category tokens appearing in the introduction
// +5, and district tokens appearing in the introduction +5. The district
// check only runs when both the introduction and the category are present,
// matching the nesting of the original rules.
func scoreKeywords(rec *model.PlaceRecord) model.CategoryScore {
	score := 0
	strengths := []string{}
	improvements := []string{}

	switch {
	case len(rec.Keywords) >= 8:
		score += 5
		strengths = append(strengths,
			fmt.Sprintf("리뷰에서 추출된 키워드가 %d개로 풍부합니다", len(rec.Keywords)))
	case len(rec.Keywords) >= 4:
		score += 3
		strengths = append(strengths, fmt.Sprintf("키워드가 %d개 있습니다", len(rec.Keywords)))
	case len(rec.Keywords) > 0:
		score++
		improvements = append(improvements, "리뷰 키워드가 적어요. 리뷰가 많아지면 자연스럽게 늘어납니다")
	default:
		improvements = append(improvements, "리뷰에서 추출된 키워드가 없습니다")
	}

	intro := strings.ToLower(rec.Intro())
	catStr := strings.ToLower(rec.Category)

	switch {
	case intro != "" && catStr != "":
		catTokens := textparse.CategoryWords(catStr)
		var matched []string
		for _, token := range catTokens {
			if strings.Contains(intro, token) {
				matched = append(matched, token)
			}
		}
		if len(matched) > 0 {
			score += 5
			strengths = append(strengths,
				fmt.Sprintf("소개글에 업종 키워드가 포함되어 있습니다 (%s)", strings.Join(matched, ", ")))
		} else {
			hint := catTokens
			if len(hint) > 3 {
				hint = hint[:3]
			}
			improvements = append(improvements,
				fmt.Sprintf("소개글에 업종 키워드를 넣어주세요 (예: %s)", strings.Join(hint, ", ")))
		}

		if district, subDistrict, ok := textparse.CityDistricts(rec.Address); ok {
			var locTokens []string
			for _, t := range []string{district, subDistrict} {
				if t != "" {
					locTokens = append(locTokens, t)
				}
			}
			var matchedLoc []string
			for _, t := range locTokens {
				if strings.Contains(intro, t) {
					matchedLoc = append(matchedLoc, t)
				}
			}
			if len(matchedLoc) > 0 {
				score += 5
				strengths = append(strengths,
					fmt.Sprintf("소개글에 지역 키워드가 포함되어 있습니다 (%s)", strings.Join(matchedLoc, ", ")))
			} else {
				improvements = append(improvements,
					fmt.Sprintf("소개글에 지역명을 넣어주세요 (예: %s)", strings.Join(locTokens, ", ")))
			}
		}
	case intro == "":
		improvements = append(improvements, "소개글이 없어 키워드 최적화가 불가능합니다. 소개글부터 작성해주세요")
	}

	return category(score, 15, strengths, improvements)
}
