package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
)

// SaleRepository stores sales records imported from the sales sheet.
type SaleRepository interface {
	// LoadAll returns every sale keyed by business key.
	LoadAll(ctx context.Context) (map[entity.SaleKey]*entity.Sale, error)

	// Insert stores a new sale.
	Insert(ctx context.Context, sale *entity.Sale) error

	// UpdateFields applies the changed columns of one sale.
	UpdateFields(ctx context.Context, saleID uuid.UUID, fields map[string]any) error

	// ListAll returns every sale ordered by sale date then carpet id,
	// for the export report.
	ListAll(ctx context.Context) ([]entity.Sale, error)

	// InTx runs fn against a transaction-scoped copy of the repository,
	// committing on nil and rolling back on error.
	InTx(ctx context.Context, fn func(SaleRepository) error) error
}
