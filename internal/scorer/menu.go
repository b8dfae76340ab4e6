package scorer

import (
	"fmt"
	"strings"

	"github.com/placepulse/place-audit/internal/model"
)

// scoreMenu covers the merged menu board (max 15): item count up to +2,
// price coverage up to +3, photo coverage up to +4, description coverage
// up to +3, representative-item flag +3. An empty board short-circuits to
// score 0 / status bad regardless of the 40% threshold.
func scoreMenu(rec *model.PlaceRecord) model.CategoryScore {
	menus := rec.Menus
	if len(menus) == 0 {
		return model.CategoryScore{
			Score:        0,
			Max:          15,
			Status:       model.StatusBad,
			Strengths:    []string{},
			Improvements: []string{"메뉴가 등록되지 않았습니다. 메뉴를 등록해주세요"},
		}
	}

	score := 0
	strengths := []string{}
	improvements := []string{}

	switch {
	case len(menus) >= 10:
		score += 2
		strengths = append(strengths, fmt.Sprintf("메뉴 %d개가 등록되어 있습니다", len(menus)))
	case len(menus) >= 5:
		score++
		strengths = append(strengths, fmt.Sprintf("메뉴 %d개가 등록되어 있습니다", len(menus)))
		improvements = append(improvements, "주요 메뉴를 모두 등록해주세요 (10개 이상 권장)")
	default:
		improvements = append(improvements,
			fmt.Sprintf("메뉴가 %d개뿐이에요. 모든 메뉴를 등록해주세요", len(menus)))
	}

	withPrice := 0
	withPhoto := 0
	withDesc := 0
	repCount := 0
	groups := make(map[string]bool)
	for _, m := range menus {
		if m.Price != nil {
			withPrice++
		}
		if m.HasPhoto {
			withPhoto++
		}
		if m.Description != nil && *m.Description != "" {
			withDesc++
		}
		if m.IsRepresentative {
			repCount++
		}
		if m.Group != nil && *m.Group != "" {
			groups[*m.Group] = true
		}
	}
	total := float64(len(menus))

	switch priceRate := float64(withPrice) / total; {
	case priceRate >= 0.9:
		score += 3
		strengths = append(strengths, "거의 모든 메뉴에 가격이 등록되어 있습니다")
	case priceRate >= 0.5:
		score += 2
		improvements = append(improvements,
			fmt.Sprintf("메뉴 중 %d개에 가격이 없어요. 가격을 모두 등록해주세요", len(menus)-withPrice))
	default:
		improvements = append(improvements,
			"메뉴 가격이 대부분 빠져있어요. 가격을 등록하면 고객 결정이 빨라집니다")
	}

	switch photoRate := float64(withPhoto) / total; {
	case photoRate >= 0.7:
		score += 4
		strengths = append(strengths,
			fmt.Sprintf("메뉴 %d개에 사진이 있습니다 (%d%%)", withPhoto, int(photoRate*100+0.5)))
	case photoRate >= 0.3:
		score += 2
		improvements = append(improvements,
			fmt.Sprintf("메뉴 사진이 %d개뿐이에요. 각 메뉴마다 사진을 올려주세요", withPhoto))
	case withPhoto > 0:
		score++
		improvements = append(improvements,
			fmt.Sprintf("메뉴 사진이 %d개로 부족해요. 사진이 있는 메뉴가 주문율이 높아요", withPhoto))
	default:
		improvements = append(improvements, "메뉴 사진이 없습니다! 대표 메뉴부터 사진을 올려주세요")
	}

	switch descRate := float64(withDesc) / total; {
	case descRate >= 0.5:
		score += 3
		strengths = append(strengths,
			fmt.Sprintf("메뉴 %d개에 설명이 있어 고객 이해도를 높여줍니다", withDesc))
	case descRate >= 0.2:
		score += 2
		improvements = append(improvements, "메뉴 설명을 더 추가해주세요. 재료, 양, 특징을 적으면 좋아요")
	case withDesc > 0:
		score++
		improvements = append(improvements,
			fmt.Sprintf("메뉴 설명이 %d개뿐이에요. 인기 메뉴 위주로 설명을 추가해보세요", withDesc))
	default:
		improvements = append(improvements, "메뉴 설명이 없습니다. 맛, 재료, 양 등을 적으면 주문율이 올라가요")
	}

	if repCount > 0 {
		score += 3
		parts := []string{fmt.Sprintf("대표메뉴 %d개가 설정되어 있습니다", repCount)}
		if len(groups) >= 2 {
			parts = append(parts, fmt.Sprintf("메뉴가 %d개 카테고리로 분류되어 있습니다", len(groups)))
		}
		strengths = append(strengths, strings.Join(parts, ". "))
	} else {
		improvements = append(improvements, "대표메뉴를 설정하면 고객이 인기 메뉴를 바로 볼 수 있어요")
	}

	return category(score, 15, strengths, improvements)
}
