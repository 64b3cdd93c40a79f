package main

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Simplici0/toolcost/internal/consumption"
)

func TestParseToolForm_MalformedFieldsFallBack(t *testing.T) {
	req := httptest.NewRequest("POST", "/tools", nil)
	req.Form = url.Values{
		"kind":         {"top-solid"},
		"name":         {"  tip drill "},
		"insert_life":  {"abc"},
		"insert_price": {"35,000"},
		"holder_ratio": {""},
		"regrinds":     {"2.7"},
	}

	spec := parseToolForm(req)

	assert.Equal(t, consumption.KindTopSolidIndexable, spec.Kind)
	assert.Equal(t, "tip drill", spec.Name)
	assert.Zero(t, spec.InsertLife)
	assert.InDelta(t, 35000, spec.InsertPrice, 1e-9)
	assert.Equal(t, 1, spec.HolderRatio)
	assert.Equal(t, 2, spec.Regrinds)
	assert.InDelta(t, 1, spec.RecoveryRatio, 1e-9)
}

func TestParseToolForm_UnknownKindIsIndexable(t *testing.T) {
	req := httptest.NewRequest("POST", "/tools", nil)
	req.Form = url.Values{"kind": {"laser"}, "corner_life": {"NaN"}}

	spec := parseToolForm(req)

	assert.Equal(t, consumption.KindIndexable, spec.Kind)
	assert.Zero(t, spec.CornerLife)

	tool, err := spec.Tool()
	assert.NoError(t, err)
	c := tool.Consume(30)
	assert.Positive(t, c.Units)
}

func TestParseBasisForm(t *testing.T) {
	defaults := consumption.Basis{Mode: consumption.ModeDistance, Distance: 30, DepthPerHole: 0.03}

	tests := []struct {
		name string
		form url.Values
		want consumption.Basis
	}{
		{
			name: "distance",
			form: url.Values{"mode": {"distance"}, "distance": {"12.5"}, "depth_per_hole": {"0.05"}},
			want: consumption.Basis{Mode: consumption.ModeDistance, Distance: 12.5, DepthPerHole: 0.05},
		},
		{
			name: "holes with malformed depth",
			form: url.Values{"mode": {"holes"}, "holes": {"1,200"}, "depth_per_hole": {"deep"}},
			want: consumption.Basis{Mode: consumption.ModeHoles, Holes: 1200, DepthPerHole: 0.03},
		},
		{
			name: "negatives clamp",
			form: url.Values{"distance": {"-5"}, "holes": {"-3"}, "depth_per_hole": {"-1"}},
			want: consumption.Basis{Mode: consumption.ModeDistance, DepthPerHole: 0.03},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/basis", nil)
			req.Form = tt.form
			assert.Equal(t, tt.want, parseBasisForm(req, defaults))
		})
	}
}
