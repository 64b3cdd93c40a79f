package consumption

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Indexable is a holder carrying replaceable multi-corner inserts.
type Indexable struct {
	Name string `json:"name" yaml:"name"`
	// CornerLife is the distance in meters one corner machines.
	CornerLife float64 `json:"corner_life" yaml:"corner_life"`
	// Corners is the number of usable corners per insert.
	Corners int `json:"corners" yaml:"corners"`
	// Simultaneous is the number of inserts mounted at once; a change swaps all of them.
	Simultaneous int     `json:"simultaneous" yaml:"simultaneous"`
	InsertPrice  float64 `json:"insert_price" yaml:"insert_price"`
	HolderPrice  float64 `json:"holder_price" yaml:"holder_price"`
	// HolderRatio is the number of inserts consumed per holder.
	HolderRatio   int     `json:"holder_ratio" yaml:"holder_ratio"`
	ChangeSeconds float64 `json:"change_seconds" yaml:"change_seconds"`
}

func (t Indexable) Kind() Kind    { return KindIndexable }
func (t Indexable) Label() string { return t.Name }

func (t Indexable) SecondsPerChange() float64 { return nonNegative(t.ChangeSeconds) }

// Consume implements Tool.
func (t Indexable) Consume(distance float64) Consumption {
	life := positive(t.CornerLife * float64(atLeastOne(int64(t.Corners))))
	simultaneous := atLeastOne(int64(t.Simultaneous))

	changes := ceilCount(nonNegative(distance) / life)
	inserts := mulCount(changes, simultaneous)
	holders := ceilDiv(inserts, int64(t.HolderRatio))

	insertPrice := nonNegative(t.InsertPrice)
	holderPrice := nonNegative(t.HolderPrice)

	return Consumption{
		Units:         inserts,
		Holders:       holders,
		Changes:       changes,
		Cost:          float64(inserts)*insertPrice + float64(holders)*holderPrice,
		EffectiveLife: life,
		Breakdown: fmt.Sprintf("%s inserts × %s + %s holders × %s",
			humanize.Comma(inserts), money(insertPrice),
			humanize.Comma(holders), money(holderPrice)),
	}
}

// TopSolidIndexable is a holder carrying a regrindable solid tip. A regrind
// restores one full life cycle of the tip.
type TopSolidIndexable struct {
	Name string `json:"name" yaml:"name"`
	// InsertLife is the distance in meters one tip machines between regrinds.
	InsertLife    float64 `json:"insert_life" yaml:"insert_life"`
	Regrinds      int     `json:"regrinds" yaml:"regrinds"`
	RegrindPrice  float64 `json:"regrind_price" yaml:"regrind_price"`
	InsertPrice   float64 `json:"insert_price" yaml:"insert_price"`
	HolderPrice   float64 `json:"holder_price" yaml:"holder_price"`
	HolderRatio   int     `json:"holder_ratio" yaml:"holder_ratio"`
	ChangeSeconds float64 `json:"change_seconds" yaml:"change_seconds"`
}

func (t TopSolidIndexable) Kind() Kind    { return KindTopSolidIndexable }
func (t TopSolidIndexable) Label() string { return t.Name }

func (t TopSolidIndexable) SecondsPerChange() float64 { return nonNegative(t.ChangeSeconds) }

// Consume implements Tool.
func (t TopSolidIndexable) Consume(distance float64) Consumption {
	regrinds := atLeastZero(int64(t.Regrinds))
	life := positive(t.InsertLife * float64(1+regrinds))

	units := ceilCount(nonNegative(distance) / life)
	holders := ceilDiv(units, int64(t.HolderRatio))

	insertPrice := nonNegative(t.InsertPrice)
	regrindPrice := nonNegative(t.RegrindPrice)
	holderPrice := nonNegative(t.HolderPrice)
	unitPrice := insertPrice + regrindPrice*float64(regrinds)

	return Consumption{
		Units:         units,
		Holders:       holders,
		Changes:       units,
		Cost:          float64(units)*unitPrice + float64(holders)*holderPrice,
		EffectiveLife: life,
		Breakdown: fmt.Sprintf("%s tips × (%s + %d regrinds × %s) + %s holders × %s",
			humanize.Comma(units), money(insertPrice), regrinds, money(regrindPrice),
			humanize.Comma(holders), money(holderPrice)),
	}
}

// Solid is a one-piece tool body. Each regrind recovers RecoveryRatio of the
// base life on top of it.
type Solid struct {
	Name string `json:"name" yaml:"name"`
	// BodyLife is the distance in meters a new body machines.
	BodyLife      float64 `json:"body_life" yaml:"body_life"`
	Regrinds      int     `json:"regrinds" yaml:"regrinds"`
	RegrindPrice  float64 `json:"regrind_price" yaml:"regrind_price"`
	RecoveryRatio float64 `json:"recovery_ratio" yaml:"recovery_ratio"`
	BodyPrice     float64 `json:"body_price" yaml:"body_price"`
	ChangeSeconds float64 `json:"change_seconds" yaml:"change_seconds"`
}

func (t Solid) Kind() Kind    { return KindSolid }
func (t Solid) Label() string { return t.Name }

func (t Solid) SecondsPerChange() float64 { return nonNegative(t.ChangeSeconds) }

// Consume implements Tool.
func (t Solid) Consume(distance float64) Consumption {
	regrinds := atLeastZero(int64(t.Regrinds))
	base := nonNegative(t.BodyLife)
	life := positive(base + float64(regrinds)*(base*nonNegative(t.RecoveryRatio)))

	units := ceilCount(nonNegative(distance) / life)

	bodyPrice := nonNegative(t.BodyPrice)
	regrindPrice := nonNegative(t.RegrindPrice)
	unitPrice := bodyPrice + regrindPrice*float64(regrinds)

	return Consumption{
		Units:         units,
		Changes:       units,
		Cost:          float64(units) * unitPrice,
		EffectiveLife: life,
		Breakdown: fmt.Sprintf("%s bodies × (%s + %d regrinds × %s)",
			humanize.Comma(units), money(bodyPrice), regrinds, money(regrindPrice)),
	}
}

func money(v float64) string {
	return humanize.Commaf(math.Round(v*100) / 100)
}
