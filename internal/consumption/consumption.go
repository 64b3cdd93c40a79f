// Package consumption estimates how many cutting-tool consumables a machining job uses
// and what they cost. Every function here is pure: no I/O, no shared state.
package consumption

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Epsilon replaces zero or negative continuous divisors (lives, depths).
	Epsilon = 1e-9

	// MaxCount caps every ceiling-rounded count so degenerate inputs stay finite
	// and exactly representable as float64.
	MaxCount int64 = 1 << 53
)

// Kind tags the tool variant a specification belongs to.
type Kind string

const (
	KindIndexable         Kind = "indexable"
	KindTopSolidIndexable Kind = "top_solid_indexable"
	KindSolid             Kind = "solid"
)

// Kinds lists every supported variant in display order.
var Kinds = []Kind{KindIndexable, KindTopSolidIndexable, KindSolid}

// Label returns a human readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindIndexable:
		return "Indexable"
	case KindTopSolidIndexable:
		return "Top-solid indexable"
	case KindSolid:
		return "Solid"
	default:
		return string(k)
	}
}

// ParseKind accepts the canonical names plus a few spellings used in forms and files.
func ParseKind(raw string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	switch normalized {
	case "indexable", "insert":
		return KindIndexable, nil
	case "top_solid_indexable", "top_solid", "topsolid", "tip":
		return KindTopSolidIndexable, nil
	case "solid", "body":
		return KindSolid, nil
	}
	return "", fmt.Errorf("unknown tool kind %q", raw)
}

// Tool is one candidate tool configuration. Each variant carries its own
// consumption formula.
type Tool interface {
	Kind() Kind
	// Label is the user supplied name, possibly empty.
	Label() string
	// SecondsPerChange is the machine downtime of one replacement event.
	SecondsPerChange() float64
	// Consume computes the consumables needed to machine distance meters.
	Consume(distance float64) Consumption
}

// Consumption is the raw output of one tool variant for a given distance.
type Consumption struct {
	// Units is the number of inserts, tips or bodies consumed.
	Units int64
	// Holders is the number of holders consumed; always 0 for solid tools.
	Holders int64
	// Changes counts replacement events on the machine.
	Changes int64
	// Cost is the total money spent on units and holders.
	Cost float64
	// EffectiveLife is the distance one unit (or one insert position) covers.
	EffectiveLife float64
	// Breakdown explains how Cost was assembled.
	Breakdown string
}

// HolesFromDistance converts a machined distance into a hole count.
func HolesFromDistance(distance, depth float64) int64 {
	return ceilCount(nonNegative(distance) / positive(depth))
}

// DistanceFromHoles converts a hole count into a machined distance. Depth is
// clamped the same way as in HolesFromDistance.
func DistanceFromHoles(holes int64, depth float64) float64 {
	if holes < 0 {
		holes = 0
	}
	return float64(holes) * positive(depth)
}

// ceilCount rounds up to a whole count, saturating at MaxCount.
func ceilCount(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	c := math.Ceil(v)
	if c >= float64(MaxCount) || math.IsInf(c, 1) {
		return MaxCount
	}
	return int64(c)
}

// ceilDiv divides two counts rounding up; the divisor is clamped to at least 1.
func ceilDiv(n, d int64) int64 {
	d = atLeastOne(d)
	if n <= 0 {
		return 0
	}
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// mulCount multiplies two counts, saturating at MaxCount.
func mulCount(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > MaxCount/b {
		return MaxCount
	}
	return a * b
}

func positive(v float64) float64 {
	if math.IsNaN(v) || v < Epsilon {
		return Epsilon
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func atLeastOne(n int64) int64 {
	if n < 1 {
		return 1
	}
	return n
}

func atLeastZero(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
