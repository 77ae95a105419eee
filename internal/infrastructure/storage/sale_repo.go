package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// SaleRepo implements repository.SaleRepository on GORM.
type SaleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

func (r *SaleRepo) LoadAll(ctx context.Context) (map[entity.SaleKey]*entity.Sale, error) {
	var sales []entity.Sale
	if err := r.db.WithContext(ctx).Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("loading sales: %w", err)
	}
	byKey := make(map[entity.SaleKey]*entity.Sale, len(sales))
	for i := range sales {
		byKey[sales[i].Key()] = &sales[i]
	}
	return byKey, nil
}

func (r *SaleRepo) Insert(ctx context.Context, sale *entity.Sale) error {
	if sale.SaleID == uuid.Nil {
		sale.SaleID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return fmt.Errorf("inserting sale %s: %w", sale.SaleID, translateCreateErr(err))
	}
	return nil
}

func (r *SaleRepo) UpdateFields(ctx context.Context, saleID uuid.UUID, fields map[string]any) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Where("sale_id = ?", saleID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("updating sale %s: %w", saleID, err)
	}
	return nil
}

func (r *SaleRepo) ListAll(ctx context.Context) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Order("sale_date, carpet_id").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return sales, nil
}

func (r *SaleRepo) InTx(ctx context.Context, fn func(repository.SaleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SaleRepo{db: tx})
	})
}
