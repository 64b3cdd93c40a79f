package consumption

import (
	"math"
	"sort"
)

// DefaultWorkingDays is the number of working days per year used for annual figures.
const DefaultWorkingDays = 300

// Ranking orders a result set by cost efficiency. Indexes refer to the slice
// passed to Rank; Baseline and Best are -1 for an empty set.
type Ranking struct {
	// SavingRates holds, per result, the percent saved against the baseline.
	SavingRates []float64 `json:"saving_rates"`
	// Baseline is the least efficient result (highest cost per meter).
	Baseline int `json:"baseline"`
	// Best is the most efficient result (lowest cost per meter).
	Best int `json:"best"`
	// Order lists result indexes from cheapest to most expensive per meter.
	Order           []int   `json:"order"`
	MaxCostPerMeter float64 `json:"max_cost_per_meter"`
}

// SavingRate is the percent saved by spending cost instead of baseline,
// clamped to [0, 100]. A zero baseline yields 0.
func SavingRate(cost, baseline float64) float64 {
	if baseline <= 0 || math.IsNaN(cost) || math.IsNaN(baseline) {
		return 0
	}
	rate := (1 - cost/baseline) * 100
	return math.Min(100, math.Max(0, rate))
}

// Rank compares every result against the most expensive one per meter.
func Rank(results []Result) Ranking {
	ranking := Ranking{
		SavingRates: make([]float64, len(results)),
		Baseline:    -1,
		Best:        -1,
		Order:       make([]int, len(results)),
	}
	if len(results) == 0 {
		return ranking
	}

	for i, r := range results {
		ranking.Order[i] = i
		if ranking.Baseline < 0 || r.CostPerMeter > results[ranking.Baseline].CostPerMeter {
			ranking.Baseline = i
		}
	}
	ranking.MaxCostPerMeter = results[ranking.Baseline].CostPerMeter

	sort.SliceStable(ranking.Order, func(a, b int) bool {
		return results[ranking.Order[a]].CostPerMeter < results[ranking.Order[b]].CostPerMeter
	})
	ranking.Best = ranking.Order[0]

	for i, r := range results {
		ranking.SavingRates[i] = SavingRate(r.CostPerMeter, ranking.MaxCostPerMeter)
	}
	return ranking
}

// AnnualParams scales a single job comparison to a year of production.
type AnnualParams struct {
	WorkingDays float64 `json:"working_days" yaml:"working_days"`
	// MinutesPerPart converts saved machine time into extra parts.
	MinutesPerPart float64 `json:"minutes_per_part" yaml:"minutes_per_part"`
	PartValue      float64 `json:"part_value" yaml:"part_value"`
}

// DefaultAnnualParams returns 300 working days, one minute and one currency unit per part.
func DefaultAnnualParams() AnnualParams {
	return AnnualParams{
		WorkingDays:    DefaultWorkingDays,
		MinutesPerPart: 1,
		PartValue:      1,
	}
}

// Comparison is the saving narrative of replacing Reference with Alternative.
type Comparison struct {
	Reference   Result `json:"reference"`
	Alternative Result `json:"alternative"`

	SavingRate      float64 `json:"saving_rate"`
	CostSaving      float64 `json:"cost_saving"`
	TimeSavingHours float64 `json:"time_saving_hours"`

	AnnualTimeSavingHours float64 `json:"annual_time_saving_hours"`
	AnnualCostSaving      float64 `json:"annual_cost_saving"`
	ExtraParts            int64   `json:"extra_parts"`
	ExtraValue            float64 `json:"extra_value"`
}

// GaugeDegrees maps the saving rate onto a half circle.
func (c Comparison) GaugeDegrees() float64 {
	return c.SavingRate * 1.8
}

// Compare measures the saving of alt against the current practice ref.
// Cost and time savings keep their sign; the saving rate never goes below 0.
// Unset working days and minutes per part take their defaults.
func Compare(ref, alt Result, params AnnualParams) Comparison {
	if params.WorkingDays <= 0 {
		params.WorkingDays = DefaultWorkingDays
	}
	if params.MinutesPerPart <= 0 || math.IsNaN(params.MinutesPerPart) {
		params.MinutesPerPart = DefaultAnnualParams().MinutesPerPart
	}

	c := Comparison{
		Reference:       ref,
		Alternative:     alt,
		SavingRate:      SavingRate(alt.Cost, ref.Cost),
		CostSaving:      ref.Cost - alt.Cost,
		TimeSavingHours: (ref.ChangeSeconds - alt.ChangeSeconds) / 3600,
	}
	c.AnnualTimeSavingHours = c.TimeSavingHours * params.WorkingDays
	c.AnnualCostSaving = c.CostSaving * params.WorkingDays

	parts := math.Floor(c.AnnualTimeSavingHours * 60 / params.MinutesPerPart)
	if parts > 0 {
		c.ExtraParts = ceilCount(parts)
	}
	c.ExtraValue = float64(c.ExtraParts) * nonNegative(params.PartValue)
	return c
}

// KindEntry is one bar of the cost-per-meter chart.
type KindEntry struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	CostPerMeter float64 `json:"cost_per_meter"`
}

// KindGroup is the set of bars sharing a tool kind.
type KindGroup struct {
	Kind    Kind        `json:"kind"`
	Entries []KindEntry `json:"entries"`
}

// GroupByKind buckets results by kind in Kinds order, dropping empty kinds.
func GroupByKind(results []Result) []KindGroup {
	byKind := make(map[Kind][]KindEntry, len(Kinds))
	for i, r := range results {
		byKind[r.Kind] = append(byKind[r.Kind], KindEntry{
			Index:        i,
			Name:         r.Name,
			CostPerMeter: r.CostPerMeter,
		})
	}

	groups := make([]KindGroup, 0, len(byKind))
	for _, k := range Kinds {
		if entries, ok := byKind[k]; ok {
			groups = append(groups, KindGroup{Kind: k, Entries: entries})
		}
	}
	return groups
}
