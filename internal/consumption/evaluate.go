package consumption

import "fmt"

// Result is the consumption of one tool over the evaluated job.
type Result struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Units   int64  `json:"units"`
	Holders int64  `json:"holders"`
	Changes int64  `json:"changes"`
	// ChangeSeconds is the total machine downtime spent on replacements.
	ChangeSeconds float64 `json:"change_seconds"`
	Cost          float64 `json:"cost"`
	CostPerMeter  float64 `json:"cost_per_meter"`
	CostPerHole   float64 `json:"cost_per_hole"`
	EffectiveLife float64 `json:"effective_life"`
	Breakdown     string  `json:"breakdown"`
}

// Evaluation groups the results of one calculate request.
type Evaluation struct {
	Basis   Resolved `json:"basis"`
	Results []Result `json:"results"`
	Ranking Ranking  `json:"ranking"`
}

// Evaluate computes one Result per tool. Nil entries are skipped. Unnamed tools
// get a placeholder built from their kind and position.
func Evaluate(distance float64, holes int64, tools []Tool) []Result {
	distance = nonNegative(distance)
	holes = atLeastZero(holes)

	results := make([]Result, 0, len(tools))
	for i, tool := range tools {
		if tool == nil {
			continue
		}
		results = append(results, evaluateOne(distance, holes, i+1, tool))
	}
	return results
}

// EvaluateBasis resolves the basis, evaluates every tool and ranks the results.
func EvaluateBasis(basis Basis, tools []Tool) Evaluation {
	resolved := basis.Resolve()
	results := Evaluate(resolved.Distance, resolved.Holes, tools)
	return Evaluation{
		Basis:   resolved,
		Results: results,
		Ranking: Rank(results),
	}
}

// PlaceholderName is the display label of an unnamed tool at 1-based position n.
func PlaceholderName(kind Kind, n int) string {
	return fmt.Sprintf("%s #%d", kind.Label(), n)
}

func evaluateOne(distance float64, holes int64, position int, tool Tool) Result {
	c := tool.Consume(distance)

	name := tool.Label()
	if name == "" {
		name = PlaceholderName(tool.Kind(), position)
	}

	r := Result{
		Name:          name,
		Kind:          tool.Kind(),
		Units:         c.Units,
		Holders:       c.Holders,
		Changes:       c.Changes,
		ChangeSeconds: float64(c.Changes) * tool.SecondsPerChange(),
		Cost:          c.Cost,
		EffectiveLife: c.EffectiveLife,
		Breakdown:     c.Breakdown,
	}
	if distance > 0 {
		r.CostPerMeter = c.Cost / distance
	}
	if holes > 0 {
		r.CostPerHole = c.Cost / float64(holes)
	}
	return r
}
