package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// facetColumns maps single-column facets onto the carpets columns.
// Color is handled separately: it spans three columns.
var facetColumns = map[entity.Facet]string{
	entity.FacetGeometry:   "geometry",
	entity.FacetSize:       "size",
	entity.FacetStyle:      "style",
	entity.FacetCollection: "collection",
}

var colorColumns = []string{"color_1", "color_2", "color_3"}

// CarpetRepo implements repository.CarpetRepository on GORM.
type CarpetRepo struct {
	db *gorm.DB
}

func NewCarpetRepo(db *gorm.DB) *CarpetRepo {
	return &CarpetRepo{db: db}
}

// applyCarpetFilters adds one WHERE clause per active facet. A color
// selection matches a carpet when ANY of its three slots holds one of
// the selected values.
func applyCarpetFilters(q *gorm.DB, filters *entity.CarpetFilters, onlyAvailable bool) *gorm.DB {
	if filters != nil {
		if len(filters.Geometry) > 0 {
			q = q.Where("geometry IN ?", filters.Geometry)
		}
		if len(filters.Size) > 0 {
			q = q.Where("size IN ?", filters.Size)
		}
		if len(filters.Color) > 0 {
			q = q.Where(
				"(color_1 IN ? OR color_2 IN ? OR color_3 IN ?)",
				filters.Color, filters.Color, filters.Color,
			)
		}
		if len(filters.Style) > 0 {
			q = q.Where("style IN ?", filters.Style)
		}
		if len(filters.Collection) > 0 {
			q = q.Where("collection IN ?", filters.Collection)
		}
	}
	if onlyAvailable {
		q = q.Where("quantity > 0")
	}
	return q
}

func (r *CarpetRepo) CountFiltered(ctx context.Context, filters *entity.CarpetFilters, onlyAvailable bool) (int64, error) {
	var count int64
	q := applyCarpetFilters(r.db.WithContext(ctx).Model(&entity.Carpet{}), filters, onlyAvailable)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting carpets: %w", err)
	}
	return count, nil
}

func (r *CarpetRepo) FacetOptions(ctx context.Context, facet entity.Facet, filters *entity.CarpetFilters, onlyAvailable bool) ([]entity.FacetOption, error) {
	if facet == entity.FacetColor {
		return r.colorOptions(ctx, filters, onlyAvailable)
	}
	column, ok := facetColumns[facet]
	if !ok {
		return nil, apperr.InvalidArgumentf("unknown facet %q", facet)
	}

	var options []entity.FacetOption
	q := applyCarpetFilters(r.db.WithContext(ctx).Model(&entity.Carpet{}), filters, onlyAvailable)
	err := q.Where(column+" <> ''").
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Order(column).
		Scan(&options).Error
	if err != nil {
		return nil, fmt.Errorf("loading %s options: %w", facet, err)
	}
	return options, nil
}

// colorOptions aggregates the three color slots. The per-slot GROUP BY
// queries run concurrently and fan in by summing counts per value, so a
// carpet holding the same color in two slots counts twice.
func (r *CarpetRepo) colorOptions(ctx context.Context, filters *entity.CarpetFilters, onlyAvailable bool) ([]entity.FacetOption, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		slotErrs [3]error
	)
	byValue := map[string]int64{}

	for i, column := range colorColumns {
		wg.Add(1)
		go func(i int, column string) {
			defer wg.Done()

			var slot []entity.FacetOption
			q := applyCarpetFilters(r.db.WithContext(ctx).Model(&entity.Carpet{}), filters, onlyAvailable)
			err := q.Where(column + " IS NOT NULL AND " + column + " <> ''").
				Select(column + " AS value, COUNT(*) AS count").
				Group(column).
				Scan(&slot).Error
			if err != nil {
				slotErrs[i] = fmt.Errorf("loading %s options: %w", column, err)
				return
			}

			mu.Lock()
			for _, opt := range slot {
				byValue[opt.Value] += opt.Count
			}
			mu.Unlock()
		}(i, column)
	}
	wg.Wait()

	for _, err := range slotErrs {
		if err != nil {
			return nil, err
		}
	}

	options := make([]entity.FacetOption, 0, len(byValue))
	for value, count := range byValue {
		options = append(options, entity.FacetOption{Value: value, Count: count})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Value < options[j].Value })
	return options, nil
}

func (r *CarpetRepo) Search(ctx context.Context, filters *entity.CarpetFilters, onlyAvailable bool, limit int) ([]entity.Carpet, error) {
	var carpets []entity.Carpet
	q := applyCarpetFilters(r.db.WithContext(ctx).Model(&entity.Carpet{}), filters, onlyAvailable)
	if err := q.Order("carpet_id").Limit(limit).Find(&carpets).Error; err != nil {
		return nil, fmt.Errorf("searching carpets: %w", err)
	}
	return carpets, nil
}

func (r *CarpetRepo) GetByID(ctx context.Context, carpetID int64) (*entity.Carpet, error) {
	var carpet entity.Carpet
	err := r.db.WithContext(ctx).First(&carpet, "carpet_id = ?", carpetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading carpet %d: %w", carpetID, err)
	}
	return &carpet, nil
}

func (r *CarpetRepo) LoadAll(ctx context.Context) (map[int64]*entity.Carpet, error) {
	var carpets []entity.Carpet
	if err := r.db.WithContext(ctx).Find(&carpets).Error; err != nil {
		return nil, fmt.Errorf("loading carpets: %w", err)
	}
	byID := make(map[int64]*entity.Carpet, len(carpets))
	for i := range carpets {
		byID[carpets[i].CarpetID] = &carpets[i]
	}
	return byID, nil
}

func (r *CarpetRepo) Insert(ctx context.Context, carpet *entity.Carpet) error {
	if err := r.db.WithContext(ctx).Create(carpet).Error; err != nil {
		return fmt.Errorf("inserting carpet %d: %w", carpet.CarpetID, translateCreateErr(err))
	}
	return nil
}

func (r *CarpetRepo) UpdateFields(ctx context.Context, carpetID int64, fields map[string]any) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Carpet{}).
		Where("carpet_id = ?", carpetID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("updating carpet %d: %w", carpetID, err)
	}
	return nil
}

func (r *CarpetRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("carpet_id IN ?", ids).Delete(&entity.Carpet{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting carpets: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CarpetRepo) InTx(ctx context.Context, fn func(repository.CarpetRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CarpetRepo{db: tx})
	})
}
