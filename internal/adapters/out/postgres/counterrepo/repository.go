// Package counterrepo implements the sequence generator on a Postgres
// counters table. One row per counter name; the increment is a single
// atomic upsert, so concurrent transactions can never observe the same
// sequence number.
package counterrepo

import (
	"context"

	"gorm.io/gorm"
)

// CounterDTO represents one named counter row.
type CounterDTO struct {
	Name string `gorm:"primaryKey"`
	Seq  int64
}

// TableName overrides GORM's default naming to use "counters".
func (CounterDTO) TableName() string {
	return "counters"
}

// GormSequenceGenerator implements ports.SequenceGenerator using GORM.
type GormSequenceGenerator struct {
	db *gorm.DB
}

// NewGormSequenceGenerator creates a new GORM sequence generator.
func NewGormSequenceGenerator(db *gorm.DB) *GormSequenceGenerator {
	return &GormSequenceGenerator{db: db}
}

// Next atomically increments the named counter and returns the new value,
// creating the counter at 1 on first use. Run inside a transaction, the
// increment rolls back with it.
func (g *GormSequenceGenerator) Next(ctx context.Context, name string) (int64, error) {
	var seq int64
	err := g.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, seq)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, name).Scan(&seq).Error
	if err != nil {
		return 0, err
	}

	return seq, nil
}
