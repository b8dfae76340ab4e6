package textparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestParseListingDate_FullYear(t *testing.T) {
	d, ok := ParseListingDate("2026.01.31.", testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), d)
}

func TestParseListingDate_ShortYear(t *testing.T) {
	d, ok := ParseListingDate("25.3.21.금", testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC), d)
}

func TestParseListingDate_MonthDay(t *testing.T) {
	d, ok := ParseListingDate("1.22.목", testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC), d)
}

func TestParseListingDate_Relative(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"3일 전", 3 * 24 * time.Hour},
		{"10분 전", 10 * time.Minute},
		{"2시간 전", 2 * time.Hour},
		{"1주 전", 7 * 24 * time.Hour},
		{"2달 전", 60 * 24 * time.Hour},
		{"2개월 전", 60 * 24 * time.Hour},
		{"1년 전", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		d, ok := ParseListingDate(tt.in, testNow)
		require.True(t, ok, tt.in)
		assert.Equal(t, testNow.Add(-tt.want), d, tt.in)
	}
}

func TestParseListingDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "어제", "next week", "---"} {
		_, ok := ParseListingDate(in, testNow)
		assert.False(t, ok, in)
	}
}

func TestDaysSince(t *testing.T) {
	days, ok := DaysSince("3일 전", testNow)
	require.True(t, ok)
	assert.Equal(t, 3, days)

	days, ok = DaysSince("2026.06.14.", testNow)
	require.True(t, ok)
	assert.Equal(t, 1, days)

	_, ok = DaysSince("garbage", testNow)
	assert.False(t, ok)
}
