package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/place-audit/pkg/naver"
)

func baseDetail() *naver.PlaceDetail {
	return &naver.PlaceDetail{
		Base: &naver.Base{
			Name:        "합정옥",
			Category:    "한식,국밥",
			RoadAddress: "서울 마포구 양화로 45",
			Address:     "서울 마포구 합정동 123-4",
			Phone:       "02-123-4567",
		},
	}
}

func TestNormalize_AddressAndPhonePreference(t *testing.T) {
	d := baseDetail()
	d.Base.VirtualPhone = "050-111-2222"

	rec := Normalize(d, nil)
	assert.Equal(t, "서울 마포구 양화로 45", rec.Address)
	assert.Equal(t, "050-111-2222", rec.Phone)

	d.Base.RoadAddress = ""
	d.Base.VirtualPhone = ""
	rec = Normalize(d, nil)
	assert.Equal(t, "서울 마포구 합정동 123-4", rec.Address)
	assert.Equal(t, "02-123-4567", rec.Phone)
}

func TestNormalize_HoursFlattenAndDedup(t *testing.T) {
	d := baseDetail()
	d.NewBusinessHours = []naver.HourGroup{
		{Name: "영업시간", BusinessHours: []naver.DayHours{
			{Day: "월", BusinessHours: &naver.TimeRange{Start: "11:00", End: "21:00"}},
			{Day: "월", BusinessHours: &naver.TimeRange{Start: "11:00", End: "21:00"}},
			{Day: "화", Description: "정기휴무"},
			{Day: "", BusinessHours: &naver.TimeRange{Start: "10:00"}},
			{Day: "", BusinessHours: nil},
		}},
	}

	rec := Normalize(d, nil)
	assert.Equal(t, []string{
		"월 11:00~21:00",
		"화 (정기휴무)",
		"10:00",
	}, rec.Hours)
}

func TestNormalize_ReviewContentFallsBackToVotedKeywords(t *testing.T) {
	d := baseDetail()
	d.VisitorReviews = &naver.VisitorReviews{
		Total: 500,
		Items: []naver.VisitorReview{
			{Nickname: "먹깨비", Rating: 5, Body: "맛있어요", Visited: "25.3.21.금"},
			{Rating: 4, VotedKeywords: []naver.VotedKeyword{{Name: "친절해요"}, {Name: "깨끗해요"}}},
		},
	}

	rec := Normalize(d, nil)
	require.Len(t, rec.Reviews.Recent, 2)
	assert.Equal(t, "먹깨비", rec.Reviews.Recent[0].Author)
	assert.Equal(t, "맛있어요", rec.Reviews.Recent[0].Content)
	assert.Equal(t, "익명", rec.Reviews.Recent[1].Author)
	assert.Equal(t, "친절해요, 깨끗해요", rec.Reviews.Recent[1].Content)
}

func TestNormalize_OwnerReplyRateOverFetchedSample(t *testing.T) {
	d := baseDetail()
	items := make([]naver.VisitorReview, 10)
	for i := range items {
		items[i] = naver.VisitorReview{Nickname: "u", Rating: 4}
		if i < 5 {
			items[i].Reply = &naver.ReviewReply{Body: "감사합니다"}
		}
	}
	// Platform-wide total is much larger than the fetched sample.
	d.VisitorReviews = &naver.VisitorReviews{Total: 500, Items: items}

	rec := Normalize(d, nil)
	assert.Equal(t, 500, rec.Reviews.Total)
	assert.Equal(t, 0.5, rec.Reviews.OwnerReplyRate)
}

func TestNormalize_ReviewsCappedAtThirty(t *testing.T) {
	d := baseDetail()
	items := make([]naver.VisitorReview, 35)
	for i := range items {
		items[i] = naver.VisitorReview{Nickname: "u"}
	}
	d.VisitorReviews = &naver.VisitorReviews{Items: items}

	rec := Normalize(d, nil)
	assert.Len(t, rec.Reviews.Recent, 30)
}

func TestNormalize_KeywordThemeFallback(t *testing.T) {
	d := baseDetail()
	d.VisitorReviewStats = &naver.VisitorReviewStats{Analysis: &naver.ReviewAnalysis{
		Themes: []naver.ReviewTheme{
			{Label: "분위기"}, {Label: ""}, {Label: "가성비"},
		},
	}}

	rec := Normalize(d, nil)
	assert.Equal(t, []string{"분위기", "가성비"}, rec.Keywords)

	d.Keywords = []string{"국밥"}
	rec = Normalize(d, nil)
	assert.Equal(t, []string{"국밥"}, rec.Keywords)
}

func TestNormalize_FeedPlaceholderSemantics(t *testing.T) {
	d := baseDetail()

	// Feed known to exist, dates unextractable: one placeholder.
	d.HasFeed = &naver.HasFeed{FeedExist: true}
	rec := Normalize(d, nil)
	require.Len(t, rec.Feeds, 1)
	assert.Equal(t, "", rec.Feeds[0].Date)

	// No activity at all: empty list.
	d.HasFeed = &naver.HasFeed{FeedExist: false}
	rec = Normalize(d, nil)
	assert.Empty(t, rec.Feeds)

	// Extracted dates win over the placeholder.
	d.HasFeed = &naver.HasFeed{FeedExist: true}
	rec = Normalize(d, []string{"3일 전", "2주 전"})
	require.Len(t, rec.Feeds, 2)
	assert.Equal(t, "3일 전", rec.Feeds[0].Date)
}

func TestNormalize_LastUpdatePreferenceChain(t *testing.T) {
	d := baseDetail()
	d.VisitorReviews = &naver.VisitorReviews{Items: []naver.VisitorReview{
		{Nickname: "u", Visited: "25.1.2.목"},
	}}

	rec := Normalize(d, []string{"3일 전"})
	assert.Equal(t, "3일 전", rec.LastUpdate)

	rec = Normalize(d, nil)
	assert.Equal(t, "25.1.2.목", rec.LastUpdate)

	d.VisitorReviews = nil
	rec = Normalize(d, nil)
	assert.Equal(t, "", rec.LastUpdate)
}

func TestNormalize_Coordinates(t *testing.T) {
	d := baseDetail()
	d.Base.Coordinate = &naver.Coordinate{X: "126.9780", Y: "37.5665"}

	rec := Normalize(d, nil)
	require.True(t, rec.HasCoordinates())
	assert.Equal(t, 37.5665, *rec.Lat)
	assert.Equal(t, 126.9780, *rec.Lng)

	d.Base.Coordinate = &naver.Coordinate{X: "bad", Y: ""}
	rec = Normalize(d, nil)
	assert.False(t, rec.HasCoordinates())
}

func TestNormalize_DescriptionFromMicroReviews(t *testing.T) {
	d := baseDetail()
	d.Base.MicroReviews = []string{"합정동 40년 전통 국밥집", "두번째 소개"}

	rec := Normalize(d, nil)
	assert.Equal(t, "합정동 40년 전통 국밥집", rec.Description)
	assert.Equal(t, rec.Description, rec.Introduction)
}

func TestNormalize_VisitorPhotoCount(t *testing.T) {
	d := baseDetail()
	d.Images = &naver.Images{TotalImages: 12}
	d.VisitorReviews = &naver.VisitorReviews{Items: []naver.VisitorReview{
		{Nickname: "a", Media: []naver.ReviewMedia{{Type: "image"}}},
		{Nickname: "b"},
	}}

	rec := Normalize(d, nil)
	assert.Equal(t, 12, rec.Photos.Business)
	assert.Equal(t, 1, rec.Photos.Visitor)
	assert.Empty(t, rec.Photos.Categories)
}
