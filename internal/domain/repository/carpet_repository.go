package repository

import (
	"context"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// CarpetRepository is the catalog store. The filter methods are pure
// reads; the mutation methods exist for the reconciliation job and run
// inside the transaction it opens via InTx.
type CarpetRepository interface {
	// CountFiltered counts carpets matching every active facet constraint.
	// onlyAvailable additionally requires quantity > 0.
	CountFiltered(ctx context.Context, filters *entity.CarpetFilters, onlyAvailable bool) (int64, error)

	// FacetOptions returns the distinct values of the facet with match
	// counts, conditioned on the supplied filters (the caller removes the
	// facet's own constraint first). Ordered by value ascending. Color
	// counts sum across the three color slots.
	FacetOptions(ctx context.Context, facet entity.Facet, filters *entity.CarpetFilters, onlyAvailable bool) ([]entity.FacetOption, error)

	// Search returns up to limit carpets matching the filters, ordered by
	// carpet id.
	Search(ctx context.Context, filters *entity.CarpetFilters, onlyAvailable bool, limit int) ([]entity.Carpet, error)

	// GetByID loads one carpet. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, carpetID int64) (*entity.Carpet, error)

	// LoadAll returns every carpet keyed by business id.
	LoadAll(ctx context.Context) (map[int64]*entity.Carpet, error)

	// Insert stores a new carpet.
	Insert(ctx context.Context, carpet *entity.Carpet) error

	// UpdateFields applies the changed columns of one carpet.
	UpdateFields(ctx context.Context, carpetID int64, fields map[string]any) error

	// DeleteByIDs removes carpets by business id, returning how many rows
	// went away.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// InTx runs fn against a transaction-scoped copy of the repository,
	// committing on nil and rolling back on error.
	InTx(ctx context.Context, fn func(CarpetRepository) error) error
}
