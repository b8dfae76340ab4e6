package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/place-audit/pkg/naver"
)

func TestMergeMenus_BasePrecedenceOnOverlap(t *testing.T) {
	base := []naver.BaseMenu{{Name: "A", Price: "1000"}}
	partner := &naver.Partner{MenuGroups: []naver.PartnerMenuGroup{{
		Name:  "메인",
		Menus: []naver.PartnerMenu{{Name: "A", Price: "2000", Desc: "x"}},
	}}}

	merged := MergeMenus(base, partner)
	require.Len(t, merged, 1)
	assert.Equal(t, "A", merged[0].Name)
	require.NotNil(t, merged[0].Price)
	assert.Equal(t, 1000, *merged[0].Price)
	require.NotNil(t, merged[0].Description)
	assert.Equal(t, "x", *merged[0].Description)
	require.NotNil(t, merged[0].Group)
	assert.Equal(t, "메인", *merged[0].Group)
}

func TestMergeMenus_PartnerFillsMissingBaseFields(t *testing.T) {
	base := []naver.BaseMenu{{Name: "김치찌개"}}
	partner := &naver.Partner{MenuGroups: []naver.PartnerMenuGroup{{
		Name: "찌개류",
		Menus: []naver.PartnerMenu{{
			Name: "김치찌개", Price: "8000", Desc: "얼큰한 맛",
			Images: []string{"img1"},
		}},
	}}}

	merged := MergeMenus(base, partner)
	require.Len(t, merged, 1)
	assert.Equal(t, 8000, *merged[0].Price)
	assert.Equal(t, "얼큰한 맛", *merged[0].Description)
	assert.True(t, merged[0].HasPhoto)
}

func TestMergeMenus_PartnerOnlyAppended(t *testing.T) {
	base := []naver.BaseMenu{{Name: "된장찌개", Price: "7000"}}
	partner := &naver.Partner{MenuGroups: []naver.PartnerMenuGroup{{
		Name: "사이드",
		Menus: []naver.PartnerMenu{
			{Name: "공기밥", Price: "1000"},
			{Name: "된장찌개", Price: "7500"},
		},
	}}}

	merged := MergeMenus(base, partner)
	require.Len(t, merged, 2)
	assert.Equal(t, "된장찌개", merged[0].Name)
	assert.Equal(t, 7000, *merged[0].Price)
	assert.Equal(t, "공기밥", merged[1].Name)
	assert.Equal(t, 1000, *merged[1].Price)
}

func TestMergeMenus_NamesUnique(t *testing.T) {
	base := []naver.BaseMenu{{Name: "A"}, {Name: "B"}}
	partner := &naver.Partner{MenuGroups: []naver.PartnerMenuGroup{
		{Name: "g1", Menus: []naver.PartnerMenu{{Name: "B"}, {Name: "C"}}},
		{Name: "g2", Menus: []naver.PartnerMenu{{Name: "C"}}},
	}}

	merged := MergeMenus(base, partner)
	names := make(map[string]int)
	for _, m := range merged {
		names[m.Name]++
	}
	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, names)
}

func TestMergeMenus_RepresentativeFlag(t *testing.T) {
	base := []naver.BaseMenu{{Name: "A", Recommend: true}, {Name: "B"}}
	partner := &naver.Partner{MenuGroups: []naver.PartnerMenuGroup{
		{Name: "대표메뉴", Menus: []naver.PartnerMenu{{Name: "B"}}},
	}}

	merged := MergeMenus(base, partner)
	require.Len(t, merged, 2)
	assert.True(t, merged[0].IsRepresentative, "base recommend flag")
	assert.True(t, merged[1].IsRepresentative, "partner group name marks representative")
}

func TestMergeMenus_NoPartner(t *testing.T) {
	base := []naver.BaseMenu{{Name: "A", Price: "1000", Images: []string{"i"}}}
	merged := MergeMenus(base, nil)
	require.Len(t, merged, 1)
	assert.True(t, merged[0].HasPhoto)
	assert.Nil(t, merged[0].Group)
}

func TestMergeMenus_EmptyNamesSkipped(t *testing.T) {
	base := []naver.BaseMenu{{Name: ""}, {Name: "A"}}
	merged := MergeMenus(base, nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "A", merged[0].Name)
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 9000, *parsePrice("9000"))
	assert.Equal(t, 9, *parsePrice("9,000원"))
	assert.Nil(t, parsePrice(""))
	assert.Nil(t, parsePrice("변동"))
}
