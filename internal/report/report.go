// Package report assembles evaluation output and writes it as a table, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// Report is one evaluation plus the optional two-way comparison.
type Report struct {
	consumption.Evaluation
	Comparison *consumption.Comparison `json:"comparison,omitempty"`
}

// New builds a report. ref and alt are 0-based result indexes; the comparison is
// attached only when both are valid and distinct.
func New(ev consumption.Evaluation, ref, alt int, params consumption.AnnualParams) Report {
	r := Report{Evaluation: ev}
	n := len(ev.Results)
	if ref >= 0 && ref < n && alt >= 0 && alt < n && ref != alt {
		c := consumption.Compare(ev.Results[ref], ev.Results[alt], params)
		r.Comparison = &c
	}
	return r
}

var csvHeader = []string{
	"name", "kind", "units", "holders", "changes", "change_seconds",
	"cost", "cost_per_meter", "cost_per_hole", "effective_life", "saving_rate", "breakdown",
}

// WriteCSV writes one row per result.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, res := range r.Results {
		record := []string{
			res.Name,
			string(res.Kind),
			strconv.FormatInt(res.Units, 10),
			strconv.FormatInt(res.Holders, 10),
			strconv.FormatInt(res.Changes, 10),
			fmt.Sprintf("%.0f", res.ChangeSeconds),
			fmt.Sprintf("%.2f", res.Cost),
			fmt.Sprintf("%.2f", res.CostPerMeter),
			fmt.Sprintf("%.4f", res.CostPerHole),
			fmt.Sprintf("%.4f", res.EffectiveLife),
			fmt.Sprintf("%.1f", savingRate(r.Ranking, i)),
			res.Breakdown,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// WriteTable writes an aligned, human readable summary.
func WriteTable(w io.Writer, r Report) error {
	fmt.Fprintf(w, "Job: %s m / %s holes (depth %s m/hole)\n\n",
		humanize.CommafWithDigits(r.Basis.Distance, 2),
		humanize.Comma(r.Basis.Holes),
		humanize.CommafWithDigits(r.Basis.DepthPerHole, 4))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTOOL\tKIND\tUNITS\tHOLDERS\tCOST\tCOST/M\tCOST/HOLE\tSAVING")
	for _, i := range r.Ranking.Order {
		res := r.Results[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.1f%%\n",
			i+1,
			res.Name,
			res.Kind.Label(),
			humanize.Comma(res.Units),
			humanize.Comma(res.Holders),
			humanize.CommafWithDigits(res.Cost, 0),
			humanize.CommafWithDigits(res.CostPerMeter, 2),
			humanize.CommafWithDigits(res.CostPerHole, 2),
			savingRate(r.Ranking, i),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}

	if c := r.Comparison; c != nil {
		fmt.Fprintf(w, "\n%s instead of %s\n", c.Alternative.Name, c.Reference.Name)
		fmt.Fprintf(w, "  saving rate:            %.1f%%\n", c.SavingRate)
		fmt.Fprintf(w, "  cost saving per job:    %s\n", humanize.CommafWithDigits(c.CostSaving, 0))
		fmt.Fprintf(w, "  annual cost saving:     %s\n", humanize.CommafWithDigits(c.AnnualCostSaving, 0))
		fmt.Fprintf(w, "  annual time saving:     %.1f h\n", c.AnnualTimeSavingHours)
		fmt.Fprintf(w, "  extra parts per year:   %s\n", humanize.Comma(c.ExtraParts))
		fmt.Fprintf(w, "  extra production value: %s\n", humanize.CommafWithDigits(c.ExtraValue, 0))
	}
	return nil
}

func savingRate(r consumption.Ranking, i int) float64 {
	if i < 0 || i >= len(r.SavingRates) {
		return 0
	}
	return r.SavingRates[i]
}
