package consumption

import "strings"

// DefaultDepthPerHole is the depth of cut per hole in meters used when none is given.
const DefaultDepthPerHole = 0.03

// Mode says which side of the distance/hole relationship the user entered.
type Mode string

const (
	ModeDistance Mode = "distance"
	ModeHoles    Mode = "holes"
)

// ParseMode maps form and file values to a Mode. Anything unrecognized is
// treated as a direct distance.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "holes", "hole", "count":
		return ModeHoles
	default:
		return ModeDistance
	}
}

// Basis is the user-entered job size. Only the field selected by Mode is read;
// the other one is derived by Resolve.
type Basis struct {
	Mode         Mode    `json:"mode" yaml:"mode"`
	Distance     float64 `json:"distance" yaml:"distance"`
	Holes        int64   `json:"holes" yaml:"holes"`
	DepthPerHole float64 `json:"depth_per_hole" yaml:"depth_per_hole"`
}

// Resolved is a Basis with both the distance and the hole count filled in.
type Resolved struct {
	Distance     float64 `json:"distance"`
	Holes        int64   `json:"holes"`
	DepthPerHole float64 `json:"depth_per_hole"`
}

// Resolve derives the missing half of the basis.
func (b Basis) Resolve() Resolved {
	depth := positive(b.DepthPerHole)

	if b.Mode == ModeHoles {
		holes := atLeastZero(b.Holes)
		return Resolved{
			Distance:     DistanceFromHoles(holes, depth),
			Holes:        holes,
			DepthPerHole: depth,
		}
	}

	distance := nonNegative(b.Distance)
	return Resolved{
		Distance:     distance,
		Holes:        HolesFromDistance(distance, depth),
		DepthPerHole: depth,
	}
}
