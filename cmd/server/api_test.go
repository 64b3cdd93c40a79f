package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evaluateBody = `{
	"basis": {"mode": "distance", "distance": 30},
	"compare": {"reference": 1, "alternative": 2},
	"tools": [
		{"kind": "solid", "name": "carbide", "body_life": 10, "body_price": 50000, "change_seconds": 30},
		{"kind": "Indexable", "name": "KDM", "corner_life": 17, "corners": 2, "simultaneous": 2,
		 "insert_price": 9000, "holder_price": 60000, "holder_ratio": 15, "change_seconds": 30}
	]
}`

func postEvaluate(t *testing.T, srv *server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func TestAPIEvaluate_RanksAndCompares(t *testing.T) {
	srv := newTestServer(t)

	rec := postEvaluate(t, srv, evaluateBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Basis struct {
			Distance float64 `json:"distance"`
			Holes    int64   `json:"holes"`
		} `json:"basis"`
		Results []struct {
			Name         string  `json:"name"`
			Cost         float64 `json:"cost"`
			CostPerMeter float64 `json:"cost_per_meter"`
		} `json:"results"`
		Ranking struct {
			Best     int       `json:"best"`
			Baseline int       `json:"baseline"`
			Rates    []float64 `json:"saving_rates"`
		} `json:"ranking"`
		Comparison *struct {
			SavingRate       float64 `json:"saving_rate"`
			AnnualCostSaving float64 `json:"annual_cost_saving"`
			ExtraParts       int64   `json:"extra_parts"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(1000), resp.Basis.Holes)
	require.Len(t, resp.Results, 2)
	assert.InDelta(t, 150000, resp.Results[0].Cost, 1e-6)
	assert.InDelta(t, 78000, resp.Results[1].Cost, 1e-6)
	assert.Equal(t, 1, resp.Ranking.Best)
	assert.Equal(t, 0, resp.Ranking.Baseline)
	assert.InDelta(t, 48, resp.Ranking.Rates[1], 1e-9)

	require.NotNil(t, resp.Comparison)
	assert.InDelta(t, 48, resp.Comparison.SavingRate, 1e-9)
	assert.InDelta(t, 72000*300, resp.Comparison.AnnualCostSaving, 1e-6)
	assert.Equal(t, int64(300), resp.Comparison.ExtraParts)
}

func TestAPIEvaluate_NoComparisonWhenNotSelected(t *testing.T) {
	srv := newTestServer(t)

	rec := postEvaluate(t, srv, `{"basis": {"mode": "holes", "holes": 100}, "tools": [{"kind": "solid", "body_life": 1, "body_price": 10}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "comparison")

	results := resp["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Solid #1", results[0].(map[string]any)["name"])
}

func TestAPIEvaluate_RejectsUnknownKind(t *testing.T) {
	srv := newTestServer(t)

	rec := postEvaluate(t, srv, `{"tools": [{"kind": "laser"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "tool 1")
}

func TestAPIEvaluate_RejectsMalformedJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := postEvaluate(t, srv, `{"tools": [`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestAPIEvaluate_PartialAnnualKeepsDefaults(t *testing.T) {
	srv := newTestServer(t)
	body := strings.Replace(evaluateBody, `"basis"`, `"annual": {"working_days": 250}, "basis"`, 1)

	rec := postEvaluate(t, srv, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Comparison struct {
			AnnualTimeSavingHours float64 `json:"annual_time_saving_hours"`
			ExtraParts            int64   `json:"extra_parts"`
			ExtraValue            float64 `json:"extra_value"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.InDelta(t, 60.0/3600*250, resp.Comparison.AnnualTimeSavingHours, 1e-9)
	assert.Equal(t, int64(250), resp.Comparison.ExtraParts)
	assert.InDelta(t, 250, resp.Comparison.ExtraValue, 1e-9)
}
