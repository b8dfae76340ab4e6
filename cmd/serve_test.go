package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placepulse/place-audit/internal/competitor"
	"github.com/placepulse/place-audit/internal/keyword"
	"github.com/placepulse/place-audit/internal/listing"
	"github.com/placepulse/place-audit/internal/model"
	"github.com/placepulse/place-audit/internal/scorer"
	"github.com/placepulse/place-audit/internal/store"
	"github.com/placepulse/place-audit/pkg/naver"
)

// fakePlatform is a map-backed naver.Client. Missing entries behave like
// empty platform responses, not errors.
type fakePlatform struct {
	details    map[string]*naver.PlaceDetail
	searchHTML map[string]string
}

func (f *fakePlatform) PlaceDetail(_ context.Context, placeID string) (*naver.PlaceDetail, error) {
	return f.details[placeID], nil
}

func (f *fakePlatform) SearchHTML(_ context.Context, query string) (string, error) {
	return f.searchHTML[query], nil
}

func (f *fakePlatform) FeedHTML(_ context.Context, _, _ string) (string, error) {
	return "", nil
}

func sampleDetail(name string) *naver.PlaceDetail {
	return &naver.PlaceDetail{
		Base: &naver.Base{
			Name:        name,
			Category:    "한식,국밥",
			Address:     "서울 마포구 합정동 123-4",
			RoadAddress: "서울 마포구 월드컵로 100",
			Phone:       "02-123-4567",
		},
	}
}

func placeLinks(ids ...string) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(`<a href="https://m.place.naver.com/restaurant/` + id + `/home">x</a>`)
	}
	return b.String()
}

func testEnv(t *testing.T) *auditEnv {
	t.Helper()

	client := &fakePlatform{
		details: map[string]*naver.PlaceDetail{
			"111": sampleDetail("합정옥"),
			"222": sampleDetail("경쟁국밥"),
		},
		searchHTML: map[string]string{
			"합정동 국밥": placeLinks("111", "222"),
		},
	}
	pacer := listing.NewPacer(0)

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })

	return &auditEnv{
		Store:     st,
		Fetcher:   listing.NewFetcher(client, pacer),
		Discovery: competitor.NewDiscovery(client, pacer),
		Analyzer:  keyword.NewAnalyzer(),
		Engine:    scorer.NewEngine(),
	}
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	mux := newMux(testEnv(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeAnalyze(t *testing.T) {
	mux := newMux(testEnv(t))

	rec := postJSON(t, mux, "/analyze", `{"input":"111"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "111", report.PlaceID)
	assert.Equal(t, "합정옥", report.Name)
	// Address and phone alone earn basic-info points.
	assert.Positive(t, report.TotalScore)
	assert.Equal(t, report.Score.Total, report.TotalScore)
	assert.Empty(t, report.Competitors)
}

func TestServeAnalyzeSaves(t *testing.T) {
	env := testEnv(t)
	mux := newMux(env)

	rec := postJSON(t, mux, "/analyze", `{"input":"111","save":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ID)

	summaries, err := env.Store.ListReports(context.Background(), store.ReportFilter{PlaceID: "111"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, report.ID, summaries[0].ID)
}

func TestServeAnalyzeBadRequests(t *testing.T) {
	mux := newMux(testEnv(t))

	rec := postJSON(t, mux, "/analyze", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, mux, "/analyze", `{"competitors":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeAnalyzeNotFound(t *testing.T) {
	mux := newMux(testEnv(t))

	// Unknown ID: the detail query reports it absent and both fallback
	// searches come back empty.
	rec := postJSON(t, mux, "/analyze", `{"input":"999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeCompetitors(t *testing.T) {
	mux := newMux(testEnv(t))

	rec := postJSON(t, mux, "/competitors", `{"input":"111"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out competitorsOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "111", out.PlaceID)

	// The subject itself is excluded from its own candidate list; the
	// subject has no coordinates, so the survivor keeps the sentinel
	// distance.
	require.Len(t, out.Competitors, 1)
	assert.Equal(t, "222", out.Competitors[0].PlaceID)
	assert.Equal(t, "경쟁국밥", out.Competitors[0].Record.Name)
	assert.InDelta(t, competitor.UnknownDistance, out.Competitors[0].DistanceKm, 0.001)
	assert.Positive(t, out.Competitors[0].Score.Total)
}

func TestServeAnalyzeWithCompetitors(t *testing.T) {
	mux := newMux(testEnv(t))

	rec := postJSON(t, mux, "/analyze", `{"input":"111","competitors":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Competitors, 1)
	assert.Equal(t, "222", report.Competitors[0].PlaceID)
}
