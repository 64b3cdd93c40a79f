package consumption

import "fmt"

// Spec is the flat record form of a Tool: one shape for every variant, used by
// forms, scenario files, the JSON API and the preset catalog. Fields that do not
// apply to Kind are ignored.
type Spec struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	CornerLife float64 `json:"corner_life,omitempty" yaml:"corner_life,omitempty"`
	InsertLife float64 `json:"insert_life,omitempty" yaml:"insert_life,omitempty"`
	BodyLife   float64 `json:"body_life,omitempty" yaml:"body_life,omitempty"`

	Corners      int `json:"corners,omitempty" yaml:"corners,omitempty"`
	Simultaneous int `json:"simultaneous,omitempty" yaml:"simultaneous,omitempty"`
	HolderRatio  int `json:"holder_ratio,omitempty" yaml:"holder_ratio,omitempty"`
	Regrinds     int `json:"regrinds,omitempty" yaml:"regrinds,omitempty"`

	InsertPrice  float64 `json:"insert_price,omitempty" yaml:"insert_price,omitempty"`
	HolderPrice  float64 `json:"holder_price,omitempty" yaml:"holder_price,omitempty"`
	RegrindPrice float64 `json:"regrind_price,omitempty" yaml:"regrind_price,omitempty"`
	BodyPrice    float64 `json:"body_price,omitempty" yaml:"body_price,omitempty"`

	RecoveryRatio float64 `json:"recovery_ratio,omitempty" yaml:"recovery_ratio,omitempty"`
	ChangeSeconds float64 `json:"change_seconds,omitempty" yaml:"change_seconds,omitempty"`
}

// Tool builds the variant selected by Kind.
func (s Spec) Tool() (Tool, error) {
	switch s.Kind {
	case KindIndexable:
		return Indexable{
			Name:          s.Name,
			CornerLife:    s.CornerLife,
			Corners:       s.Corners,
			Simultaneous:  s.Simultaneous,
			InsertPrice:   s.InsertPrice,
			HolderPrice:   s.HolderPrice,
			HolderRatio:   s.HolderRatio,
			ChangeSeconds: s.ChangeSeconds,
		}, nil
	case KindTopSolidIndexable:
		return TopSolidIndexable{
			Name:          s.Name,
			InsertLife:    s.InsertLife,
			Regrinds:      s.Regrinds,
			RegrindPrice:  s.RegrindPrice,
			InsertPrice:   s.InsertPrice,
			HolderPrice:   s.HolderPrice,
			HolderRatio:   s.HolderRatio,
			ChangeSeconds: s.ChangeSeconds,
		}, nil
	case KindSolid:
		return Solid{
			Name:          s.Name,
			BodyLife:      s.BodyLife,
			Regrinds:      s.Regrinds,
			RegrindPrice:  s.RegrindPrice,
			RecoveryRatio: s.RecoveryRatio,
			BodyPrice:     s.BodyPrice,
			ChangeSeconds: s.ChangeSeconds,
		}, nil
	}
	return nil, fmt.Errorf("unknown tool kind %q", s.Kind)
}

// SpecOf flattens a Tool back into a Spec. Tools of foreign types only keep
// their kind and label.
func SpecOf(t Tool) Spec {
	switch v := t.(type) {
	case Indexable:
		return Spec{
			Kind:          KindIndexable,
			Name:          v.Name,
			CornerLife:    v.CornerLife,
			Corners:       v.Corners,
			Simultaneous:  v.Simultaneous,
			InsertPrice:   v.InsertPrice,
			HolderPrice:   v.HolderPrice,
			HolderRatio:   v.HolderRatio,
			ChangeSeconds: v.ChangeSeconds,
		}
	case TopSolidIndexable:
		return Spec{
			Kind:          KindTopSolidIndexable,
			Name:          v.Name,
			InsertLife:    v.InsertLife,
			Regrinds:      v.Regrinds,
			RegrindPrice:  v.RegrindPrice,
			InsertPrice:   v.InsertPrice,
			HolderPrice:   v.HolderPrice,
			HolderRatio:   v.HolderRatio,
			ChangeSeconds: v.ChangeSeconds,
		}
	case Solid:
		return Spec{
			Kind:          KindSolid,
			Name:          v.Name,
			BodyLife:      v.BodyLife,
			Regrinds:      v.Regrinds,
			RegrindPrice:  v.RegrindPrice,
			RecoveryRatio: v.RecoveryRatio,
			BodyPrice:     v.BodyPrice,
			ChangeSeconds: v.ChangeSeconds,
		}
	case nil:
		return Spec{}
	}
	return Spec{Kind: t.Kind(), Name: t.Label()}
}

// Tools converts a list of specs, stopping at the first unknown kind.
func Tools(specs []Spec) ([]Tool, error) {
	tools := make([]Tool, 0, len(specs))
	for i, s := range specs {
		tool, err := s.Tool()
		if err != nil {
			return nil, fmt.Errorf("tool %d: %w", i+1, err)
		}
		tools = append(tools, tool)
	}
	return tools, nil
}
