package keyword

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/pkg/anthropic"
)

type fakeModel struct {
	text string
	err  error
	req  *anthropic.MessageRequest
}

func (f *fakeModel) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.req = &req
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.text}},
	}, nil
}

func testRecord() *model.PlaceRecord {
	return &model.PlaceRecord{
		Name:         "합정옥 망원점",
		Category:     "한식,국밥",
		Address:      "서울 마포구 합정동 123-4",
		Introduction: "40년 전통 국밥 전문점",
		Keywords:     []string{"국물맛집"},
		Menus:        []model.MenuItem{{Name: "순대국밥"}},
	}
}

func TestCurrentKeywords_AddsCategoryTokensFromIntro(t *testing.T) {
	current := currentKeywords(testRecord())
	// "국밥" appears in the introduction, "한식" does not.
	assert.Equal(t, []string{"국물맛집", "국밥"}, current)
}

func TestRuleBasedKeywords_LocationCombinations(t *testing.T) {
	results := ruleBasedKeywords(testRecord())

	var keywords []string
	for _, r := range results {
		keywords = append(keywords, r.Keyword)
	}
	// Locations in priority order: sub-district, district, name area hint;
	// then the 맛집 phrase for the best location; then finer category tokens.
	assert.Equal(t, []string{
		"합정동 국밥",
		"마포구 국밥",
		"망원 국밥",
		"합정동 맛집",
		"한식",
	}, keywords)
	for _, r := range results {
		assert.NotEmpty(t, r.Reason)
		assert.NotEmpty(t, r.Guide)
	}
}

func TestFallbackIntroTip_UsesFinestCategoryToken(t *testing.T) {
	tip := fallbackIntroTip(&model.PlaceRecord{
		Name:     "합정포차",
		Category: "포장마차 요리주점",
		Address:  "서울 마포구 합정동 123-4",
	})
	// The whitespace-split finest token, not the whole category string.
	assert.Contains(t, tip, "요리주점 전문점")
	assert.NotContains(t, tip, "포장마차 요리주점 전문점")
}

func TestAnalyze_RuleBasedOnly(t *testing.T) {
	rec := testRecord()
	result := NewAnalyzer().Analyze(context.Background(), rec, nil)

	assert.Equal(t, []string{"국물맛집", "국밥"}, result.Current)
	assert.NotEmpty(t, result.Recommended)
	assert.Contains(t, result.IntroductionTip, "마포구")
	assert.Contains(t, result.IntroductionTip, "합정옥 망원점")
}

func TestAnalyze_ModelSuggestionsFirstAndDeduplicated(t *testing.T) {
	fake := &fakeModel{text: `{
		"recommended": [
			{"keyword": "합정 혼밥 국밥", "reason": "r", "guide": "g"},
			{"keyword": "국물맛집", "reason": "dup of current", "guide": "g"}
		],
		"introductionTip": "모델이 쓴 소개글"
	}`}
	a := NewAnalyzer(WithModel(fake, "claude-sonnet-4-5-20250929"))

	result := a.Analyze(context.Background(), testRecord(), []CompetitorKeywords{
		{Name: "경쟁국밥", Keywords: []string{"해장"}},
	})

	require.NotEmpty(t, result.Recommended)
	assert.Equal(t, "합정 혼밥 국밥", result.Recommended[0].Keyword)
	for _, r := range result.Recommended {
		assert.NotEqual(t, "국물맛집", r.Keyword)
	}
	assert.Equal(t, "모델이 쓴 소개글", result.IntroductionTip)

	require.NotNil(t, fake.req)
	assert.Contains(t, fake.req.Messages[0].Content, "경쟁국밥")
	require.NotEmpty(t, fake.req.System)
	assert.NotNil(t, fake.req.System[0].CacheControl)
}

func TestAnalyze_ModelFailureDegradesToRuleBased(t *testing.T) {
	a := NewAnalyzer(WithModel(&fakeModel{err: eris.New("api down")}, "m"))
	result := a.Analyze(context.Background(), testRecord(), nil)

	assert.NotEmpty(t, result.Recommended)
	assert.Equal(t, "합정동 국밥", result.Recommended[0].Keyword)
}

func TestAnalyze_FencedModelResponse(t *testing.T) {
	fake := &fakeModel{text: "```json\n{\"recommended\":[{\"keyword\":\"k\",\"reason\":\"r\",\"guide\":\"g\"}],\"introductionTip\":\"t\"}\n```"}
	a := NewAnalyzer(WithModel(fake, "m"))

	result := a.Analyze(context.Background(), testRecord(), nil)
	assert.Equal(t, "k", result.Recommended[0].Keyword)
	assert.Equal(t, "t", result.IntroductionTip)
}

func TestAnalyze_MalformedModelResponse(t *testing.T) {
	a := NewAnalyzer(WithModel(&fakeModel{text: "추천 키워드는..."}, "m"))
	result := a.Analyze(context.Background(), testRecord(), nil)

	// Falls through to rule-based output and the fallback tip.
	assert.NotEmpty(t, result.Recommended)
	assert.Contains(t, result.IntroductionTip, "마포구")
}
