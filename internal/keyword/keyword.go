// Package keyword produces search-keyword recommendations for a listing in
// three tiers: the keywords it already ranks for, rule-based area/category
// combinations, and optional model-generated long-tail suggestions. The
// model tier is best-effort; the rule-based tiers always come back.
package keyword

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/textparse"
	"github.com/placepulse/place-audit/pkg/anthropic"
)

// Recommended is one suggested keyword with owner-facing guidance.
type Recommended struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
	Guide   string `json:"guide"`
}

// Recommendation is the full keyword analysis for one listing.
type Recommendation struct {
	Current         []string      `json:"current"`
	Recommended     []Recommended `json:"recommended"`
	IntroductionTip string        `json:"introduction_tip"`
}

// CompetitorKeywords feeds a competitor's extracted keywords into the model
// prompt for differentiation.
type CompetitorKeywords struct {
	Name     string
	Keywords []string
}

// Analyzer generates keyword recommendations. Without a model client it
// runs rule-based only.
type Analyzer struct {
	client anthropic.Client
	model  string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithModel enables the model tier.
func WithModel(client anthropic.Client, modelID string) Option {
	return func(a *Analyzer) {
		a.client = client
		a.model = modelID
	}
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the three tiers and merges them, model suggestions first,
// deduplicated case-insensitively against the current keywords. A model
// failure degrades to rule-based output, never an error.
func (a *Analyzer) Analyze(ctx context.Context, rec *model.PlaceRecord, competitors []CompetitorKeywords) *Recommendation {
	current := currentKeywords(rec)
	ruleBased := ruleBasedKeywords(rec)

	var modelResult *modelRecommendation
	if a.client != nil {
		modelResult = a.modelRecommendations(ctx, rec, current, competitors)
	}

	seen := make(map[string]bool, len(current))
	for _, k := range current {
		seen[strings.ToLower(k)] = true
	}

	var recommended []Recommended
	if modelResult != nil {
		for _, r := range modelResult.Recommended {
			lower := strings.ToLower(r.Keyword)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			recommended = append(recommended, r)
		}
	}
	for _, r := range ruleBased {
		lower := strings.ToLower(r.Keyword)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		recommended = append(recommended, r)
	}

	tip := ""
	if modelResult != nil {
		tip = modelResult.IntroductionTip
	}
	if tip == "" {
		tip = fallbackIntroTip(rec)
	}

	return &Recommendation{
		Current:         current,
		Recommended:     recommended,
		IntroductionTip: tip,
	}
}

// currentKeywords starts from the extracted review keywords and adds any
// category token the introduction already mentions.
func currentKeywords(rec *model.PlaceRecord) []string {
	keywords := append([]string(nil), rec.Keywords...)

	intro := strings.ToLower(rec.Intro())
	if intro == "" {
		return keywords
	}
	have := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		have[k] = true
	}
	for _, token := range textparse.CategoryTokens(rec.Category) {
		if strings.Contains(intro, strings.ToLower(token)) && !have[token] {
			have[token] = true
			keywords = append(keywords, token)
		}
	}
	return keywords
}

// ruleBasedKeywords combines location tokens (sub-district, district, name
// area hint) with the main category, plus the high-volume "{area} 맛집"
// phrase and the finer category tokens.
func ruleBasedKeywords(rec *model.PlaceRecord) []Recommended {
	var results []Recommended

	catTokens := textparse.CategoryTokens(rec.Category)
	mainCat := rec.Category
	if len(catTokens) > 0 {
		mainCat = catTokens[len(catTokens)-1]
	}

	district, subDistrict := textparse.Districts(rec.Address)
	var locations []string
	for _, loc := range []string{subDistrict, district, textparse.AreaHint(rec.Name)} {
		if loc != "" {
			locations = append(locations, loc)
		}
	}

	for _, loc := range locations {
		results = append(results, Recommended{
			Keyword: loc + " " + mainCat,
			Reason:  "지역명 + 업종 조합은 검색량이 많은 핵심 키워드입니다",
			Guide:   fmt.Sprintf("소개글에 %q 같은 문구를 넣어보세요", loc+"에서 만나는 "+mainCat),
		})
	}
	if len(locations) > 0 {
		results = append(results, Recommended{
			Keyword: locations[0] + " 맛집",
			Reason:  "'지역 맛집'은 가장 검색량이 많은 키워드 중 하나입니다",
			Guide:   fmt.Sprintf("소개글에 %q이라는 표현을 자연스럽게 넣어보세요", locations[0]+" 맛집"),
		})
	}

	for _, token := range catTokens {
		if token == mainCat {
			continue
		}
		results = append(results, Recommended{
			Keyword: token,
			Reason:  fmt.Sprintf("'%s'은 세부 카테고리 키워드로, 정확한 검색에 노출됩니다", token),
			Guide:   fmt.Sprintf("소개글이나 메뉴 설명에 %q 표현을 추가해보세요", token),
		})
	}

	return results
}

func fallbackIntroTip(rec *model.PlaceRecord) string {
	district, _ := textparse.Districts(rec.Address)
	if district == "" {
		return ""
	}
	// Same finest-token choice as ruleBasedKeywords, so a multi-word
	// category yields "국밥 전문점" rather than "한식 국밥 전문점".
	mainCat := rec.Category
	if tokens := textparse.CategoryTokens(rec.Category); len(tokens) > 0 {
		mainCat = tokens[len(tokens)-1]
	}
	return fmt.Sprintf("%s에 위치한 %s 전문점, %s입니다. 정성스럽게 준비한 메뉴로 여러분을 기다리고 있습니다.",
		district, mainCat, rec.Name)
}

const systemPrompt = `당신은 네이버 플레이스 키워드 최적화 전문가입니다.
소상공인 사장님(평균 53세)에게 말하듯 쉬운 한국어로 답변하세요.

규칙:
- "합정 카페"보다 "합정 작업하기 좋은 카페"처럼 구체적인 롱테일 키워드를 추천
- 실제 고객이 네이버에서 검색할 만한 자연스러운 키워드
- 각 키워드마다 "소개글에 이렇게 넣으세요" 가이드 1문장 필수
- IT 용어 금지. "SEO"→"검색 노출", "CTR"→"클릭률"
- 반드시 아래 JSON 형식으로만 응답. 다른 텍스트 금지.

JSON 형식:
{
  "recommended": [
    {
      "keyword": "추천 키워드",
      "reason": "이 키워드를 추천하는 이유 1문장",
      "guide": "소개글에 이렇게 넣어보세요: '예시 문구'"
    }
  ],
  "introductionTip": "개선된 소개글 예시 (200자 이내)"
}`

type modelRecommendation struct {
	Recommended     []Recommended `json:"recommended"`
	IntroductionTip string        `json:"introductionTip"`
}

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\n?```\\s*$")

// modelRecommendations calls the model tier. Any failure (transport, empty
// content, malformed JSON) is logged and returns nil.
func (a *Analyzer) modelRecommendations(ctx context.Context, rec *model.PlaceRecord, current []string, competitors []CompetitorKeywords) *modelRecommendation {
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: 600,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(rec, current, competitors)},
		},
	})
	if err != nil {
		zap.L().Warn("keyword: model recommendation failed", zap.Error(err))
		return nil
	}
	resp.Usage.LogCost(a.model, "keyword_recommendation")

	raw := strings.TrimSpace(resp.Text())
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}

	var parsed modelRecommendation
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		zap.L().Warn("keyword: model response not parseable", zap.Error(err))
		return nil
	}
	if len(parsed.Recommended) == 0 {
		return nil
	}
	return &parsed
}

func buildPrompt(rec *model.PlaceRecord, current []string, competitors []CompetitorKeywords) string {
	orNone := func(s string) string {
		if s == "" {
			return "(없음)"
		}
		return s
	}

	var menuNames []string
	for _, m := range rec.Menus {
		menuNames = append(menuNames, m.Name)
		if len(menuNames) == 5 {
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "가게: %s\n", rec.Name)
	fmt.Fprintf(&b, "카테고리: %s\n", rec.Category)
	fmt.Fprintf(&b, "주소: %s\n", rec.Address)
	fmt.Fprintf(&b, "현재 소개글: %s\n", orNone(rec.Intro()))
	fmt.Fprintf(&b, "현재 키워드: %s\n", orNone(strings.Join(current, ", ")))
	fmt.Fprintf(&b, "메뉴: %s", orNone(strings.Join(menuNames, ", ")))

	if len(competitors) > 0 {
		b.WriteString("\n\n경쟁 가게 키워드:")
		for _, c := range competitors {
			fmt.Fprintf(&b, "\n- %s: %s", c.Name, strings.Join(c.Keywords, ", "))
		}
	}

	b.WriteString(`

위 정보를 바탕으로:
1. 이 가게에 적합한 추천 키워드를 8~12개 생성해주세요
2. 현재 키워드와 겹치지 않는 새로운 키워드 위주로
3. "지역명 + 구체적 특성" 형태의 롱테일 키워드 포함
4. 소개글이 없거나 부실하면 개선된 소개글 예시를 만들어주세요`)

	return b.String()
}
