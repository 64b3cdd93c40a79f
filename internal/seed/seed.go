package seed

import (
	"database/sql"
	"fmt"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// Preset is one reference tool inserted by the startup seed.
type Preset struct {
	Slug      string
	Notes     string
	SortOrder int
	Spec      consumption.Spec
}

// Defaults are the presets every installation starts with.
var Defaults = []Preset{
	{
		Slug:      "king-drill-mini",
		Notes:     "Indexable drill used as the reference in saving comparisons.",
		SortOrder: 10,
		Spec: consumption.Spec{
			Kind:          consumption.KindIndexable,
			Name:          "King Drill Mini",
			CornerLife:    17,
			Corners:       2,
			Simultaneous:  1,
			InsertPrice:   9000,
			HolderPrice:   60000,
			HolderRatio:   15,
			ChangeSeconds: 30,
		},
	},
	{
		Slug:      "solid-carbide-drill",
		Notes:     "Typical solid carbide drill without regrinding.",
		SortOrder: 20,
		Spec: consumption.Spec{
			Kind:          consumption.KindSolid,
			Name:          "Solid carbide drill",
			BodyLife:      10,
			RecoveryRatio: 1,
			BodyPrice:     50000,
			ChangeSeconds: 30,
		},
	},
	{
		Slug:      "top-solid-drill",
		Notes:     "Replaceable solid tip, reground twice before scrapping.",
		SortOrder: 30,
		Spec: consumption.Spec{
			Kind:          consumption.KindTopSolidIndexable,
			Name:          "Top-solid tip drill",
			InsertLife:    10,
			Regrinds:      2,
			RegrindPrice:  8000,
			InsertPrice:   35000,
			HolderPrice:   120000,
			HolderRatio:   20,
			ChangeSeconds: 45,
		},
	},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, presets []Preset) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, p := range presets {
		if err := ensurePreset(tx, p, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensurePreset(tx *sql.Tx, p Preset, stats *Stats) error {
	if _, err := p.Spec.Tool(); err != nil {
		return fmt.Errorf("validate preset %s: %w", p.Slug, err)
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM tool_presets WHERE slug = ? LIMIT 1)`, p.Slug).Scan(&exists); err != nil {
		return fmt.Errorf("check preset %s existence: %w", p.Slug, err)
	}
	if exists {
		return nil
	}

	s := p.Spec
	if _, err := tx.Exec(`
		INSERT INTO tool_presets (
			slug, name, kind,
			corner_life, insert_life, body_life,
			corners, simultaneous, holder_ratio, regrinds,
			insert_price, holder_price, regrind_price, body_price,
			recovery_ratio, change_seconds, notes, sort_order, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE)
	`,
		p.Slug, s.Name, string(s.Kind),
		s.CornerLife, s.InsertLife, s.BodyLife,
		s.Corners, s.Simultaneous, s.HolderRatio, s.Regrinds,
		s.InsertPrice, s.HolderPrice, s.RegrindPrice, s.BodyPrice,
		s.RecoveryRatio, s.ChangeSeconds, p.Notes, p.SortOrder,
	); err != nil {
		return fmt.Errorf("insert preset %s: %w", p.Slug, err)
	}
	stats.Inserts++
	return nil
}
