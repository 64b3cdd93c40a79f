// Package catalog reads reference tool presets from SQLite. Presets are shared
// reference data; adding one to a session copies it into the session's list.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/toolcost/internal/consumption"
)

// ErrNotFound is returned when no active preset matches a slug.
var ErrNotFound = errors.New("preset not found")

// Preset is a named, ready-made tool specification.
type Preset struct {
	ID    int64
	Slug  string
	Notes string
	Spec  consumption.Spec
}

// Tool converts the preset into a consumption variant.
func (p Preset) Tool() (consumption.Tool, error) {
	return p.Spec.Tool()
}

// Store gives read access to the tool_presets table.
type Store struct {
	db *sql.DB
}

// New wraps an opened and migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectPreset = `
	SELECT
		id, slug, name, kind,
		corner_life, insert_life, body_life,
		corners, simultaneous, holder_ratio, regrinds,
		insert_price, holder_price, regrind_price, body_price,
		recovery_ratio, change_seconds, COALESCE(notes, '')
	FROM tool_presets
`

// List returns every active preset in display order.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, selectPreset+`
		WHERE active = TRUE
		ORDER BY sort_order ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tool presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tool presets: %w", err)
	}

	return presets, nil
}

// Get returns the active preset with the given slug.
func (s *Store) Get(ctx context.Context, slug string) (Preset, error) {
	row := s.db.QueryRowContext(ctx, selectPreset+`
		WHERE slug = ? AND active = TRUE
	`, slug)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("query tool preset %s: %w", slug, err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreset(row scanner) (Preset, error) {
	var p Preset
	var kind string
	err := row.Scan(
		&p.ID, &p.Slug, &p.Spec.Name, &kind,
		&p.Spec.CornerLife, &p.Spec.InsertLife, &p.Spec.BodyLife,
		&p.Spec.Corners, &p.Spec.Simultaneous, &p.Spec.HolderRatio, &p.Spec.Regrinds,
		&p.Spec.InsertPrice, &p.Spec.HolderPrice, &p.Spec.RegrindPrice, &p.Spec.BodyPrice,
		&p.Spec.RecoveryRatio, &p.Spec.ChangeSeconds, &p.Notes,
	)
	if err != nil {
		return Preset{}, err
	}
	p.Spec.Kind = consumption.Kind(kind)
	return p, nil
}
