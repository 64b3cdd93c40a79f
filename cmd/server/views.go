package main

import (
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/toolcost/internal/catalog"
	"github.com/Simplici0/toolcost/internal/consumption"
	"github.com/Simplici0/toolcost/internal/report"
	"github.com/Simplici0/toolcost/internal/session"
	"github.com/Simplici0/toolcost/web"
)

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type entryView struct {
	ID   string
	Name string
	Kind consumption.Kind
}

type resultView struct {
	consumption.Result
	SavingRate float64
	IsBest     bool
}

type chartBar struct {
	Name         string
	CostPerMeter float64
	Width        float64
}

type chartGroup struct {
	Label string
	Bars  []chartBar
}

type homeViewData struct {
	baseViewData
	Mode  string
	Input consumption.Basis
	Basis consumption.Resolved

	Kinds   []consumption.Kind
	Presets []catalog.Preset
	Entries []entryView

	Results    []resultView
	Chart      []chartGroup
	Comparison *consumption.Comparison

	ReferenceID   string
	AlternativeID string
}

type shareViewData struct {
	baseViewData
	Link   string
	Notice string
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string { return humanize.Commaf(math.Round(v)) },
	"fixed": func(v float64, digits int) string { return strconv.FormatFloat(v, 'f', digits, 64) },
	"comma": humanize.Comma,
	"inc":   func(i int) int { return i + 1 },
}

// buildHome evaluates the session's tools against its basis.
func (s *server) buildHome(st session.State, presets []catalog.Preset) homeViewData {
	ev := consumption.EvaluateBasis(st.Basis, st.Tools())
	rep := report.New(ev, st.IndexOf(st.ReferenceID), st.IndexOf(st.AlternativeID), s.annual)

	data := homeViewData{
		Mode:          string(st.Basis.Mode),
		Input:         st.Basis,
		Basis:         ev.Basis,
		Kinds:         consumption.Kinds,
		Presets:       presets,
		Comparison:    rep.Comparison,
		ReferenceID:   st.ReferenceID,
		AlternativeID: st.AlternativeID,
	}

	for i, e := range st.Entries {
		name := e.Tool.Label()
		if name == "" {
			name = consumption.PlaceholderName(e.Tool.Kind(), i+1)
		}
		data.Entries = append(data.Entries, entryView{ID: e.ID, Name: name, Kind: e.Tool.Kind()})
	}

	for i, r := range ev.Results {
		data.Results = append(data.Results, resultView{
			Result:     r,
			SavingRate: ev.Ranking.SavingRates[i],
			IsBest:     i == ev.Ranking.Best,
		})
	}

	for _, g := range consumption.GroupByKind(ev.Results) {
		group := chartGroup{Label: g.Kind.Label()}
		for _, e := range g.Entries {
			bar := chartBar{Name: e.Name, CostPerMeter: e.CostPerMeter}
			if ev.Ranking.MaxCostPerMeter > 0 {
				bar.Width = e.CostPerMeter / ev.Ranking.MaxCostPerMeter * 100
			}
			group.Bars = append(group.Bars, bar)
		}
		data.Chart = append(data.Chart, group)
	}

	return data
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
		web.FS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		slog.Error("parse template", "page", page, "error", err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("render template", "page", page, "error", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
