package main

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// Form fields never reject a request: blank or malformed numbers fall back to
// the field default and the consumption model clamps the rest.

func formFloat(r *http.Request, key string, fallback float64) float64 {
	raw := strings.TrimSpace(strings.ReplaceAll(r.FormValue(key), ",", ""))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func formInt(r *http.Request, key string, fallback int) int {
	v := math.Floor(formFloat(r, key, float64(fallback)))
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, v)))
}

func parseToolForm(r *http.Request) consumption.Spec {
	kind, err := consumption.ParseKind(r.FormValue("kind"))
	if err != nil {
		kind = consumption.KindIndexable
	}

	return consumption.Spec{
		Kind:          kind,
		Name:          strings.TrimSpace(r.FormValue("name")),
		CornerLife:    formFloat(r, "corner_life", 0),
		InsertLife:    formFloat(r, "insert_life", 0),
		BodyLife:      formFloat(r, "body_life", 0),
		Corners:       formInt(r, "corners", 1),
		Simultaneous:  formInt(r, "simultaneous", 1),
		HolderRatio:   formInt(r, "holder_ratio", 1),
		Regrinds:      formInt(r, "regrinds", 0),
		InsertPrice:   formFloat(r, "insert_price", 0),
		HolderPrice:   formFloat(r, "holder_price", 0),
		RegrindPrice:  formFloat(r, "regrind_price", 0),
		BodyPrice:     formFloat(r, "body_price", 0),
		RecoveryRatio: formFloat(r, "recovery_ratio", 1),
		ChangeSeconds: formFloat(r, "change_seconds", 0),
	}
}

func parseBasisForm(r *http.Request, defaults consumption.Basis) consumption.Basis {
	depth := formFloat(r, "depth_per_hole", defaults.DepthPerHole)
	if depth <= 0 {
		depth = defaults.DepthPerHole
	}

	holes := formFloat(r, "holes", 0)
	if holes < 0 {
		holes = 0
	}

	return consumption.Basis{
		Mode:         consumption.ParseMode(r.FormValue("mode")),
		Distance:     math.Max(0, formFloat(r, "distance", 0)),
		Holes:        int64(math.Min(math.Floor(holes), float64(consumption.MaxCount))),
		DepthPerHole: depth,
	}
}
