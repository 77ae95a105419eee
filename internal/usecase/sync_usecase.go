package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/carpet-retail-bot/config"
	"github.com/yourusername/carpet-retail-bot/internal/domain/constants"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
	"github.com/yourusername/carpet-retail-bot/internal/infrastructure/excel"
	"github.com/yourusername/carpet-retail-bot/internal/metrics"
	"github.com/yourusername/carpet-retail-bot/internal/schema"
)

// Metric job labels.
const (
	jobCarpets = "carpets"
	jobSales   = "sales"
	jobImport  = "import"
)

// SyncUseCase reconciles the database with spreadsheet snapshots and
// serves the xlsx exchange with admins. Every run validates the rows,
// diffs them against the stored records and applies the difference in a
// single transaction; the returned SyncResult accounts for every data
// row exactly once.
type SyncUseCase interface {
	// SyncCarpets pulls the carpets sheet and reconciles the catalog.
	// deleteMissing additionally removes carpets absent from the sheet.
	SyncCarpets(ctx context.Context, deleteMissing bool) (*entity.SyncResult, error)

	// SyncSales pulls the sales sheet and reconciles the sales table.
	// Sales are never deleted.
	SyncSales(ctx context.Context) (*entity.SyncResult, error)

	// ImportCarpetWorkbook reconciles the catalog from an uploaded xlsx
	// workbook. Deletion is never enabled for uploads.
	ImportCarpetWorkbook(ctx context.Context, data []byte) (*entity.SyncResult, error)

	// ExportSalesWorkbook renders every stored sale into an xlsx workbook.
	ExportSalesWorkbook(ctx context.Context) ([]byte, error)
}

type syncUseCase struct {
	source  repository.SheetSource
	carpets repository.CarpetRepository
	sales   repository.SaleRepository
	cfg     config.SheetsConfig
	metrics *metrics.BotMetrics
	log     zerolog.Logger

	// One mutex per table keeps concurrent admin triggers from running
	// the same reconciliation twice.
	carpetsMu sync.Mutex
	salesMu   sync.Mutex
}

// NewSyncUseCase builds the reconciliation service. metrics may be nil.
func NewSyncUseCase(
	source repository.SheetSource,
	carpets repository.CarpetRepository,
	sales repository.SaleRepository,
	cfg config.SheetsConfig,
	m *metrics.BotMetrics,
	logg zerolog.Logger,
) SyncUseCase {
	return &syncUseCase{
		source:  source,
		carpets: carpets,
		sales:   sales,
		cfg:     cfg,
		metrics: m,
		log:     logg.With().Str("component", "sync").Logger(),
	}
}

func (u *syncUseCase) SyncCarpets(ctx context.Context, deleteMissing bool) (*entity.SyncResult, error) {
	u.carpetsMu.Lock()
	defer u.carpetsMu.Unlock()

	table, err := u.source.FetchAll(ctx, u.cfg.SpreadsheetID, u.cfg.CarpetsTitle)
	if err != nil {
		u.metrics.IncSyncFailure(jobCarpets)
		return nil, err
	}
	return u.reconcileCarpets(ctx, jobCarpets, table, deleteMissing)
}

func (u *syncUseCase) ImportCarpetWorkbook(ctx context.Context, data []byte) (*entity.SyncResult, error) {
	u.carpetsMu.Lock()
	defer u.carpetsMu.Unlock()

	table, err := excel.ParseWorkbook(data)
	if err != nil {
		u.metrics.IncSyncFailure(jobImport)
		return nil, err
	}
	return u.reconcileCarpets(ctx, jobImport, table, false)
}

func (u *syncUseCase) SyncSales(ctx context.Context) (*entity.SyncResult, error) {
	u.salesMu.Lock()
	defer u.salesMu.Unlock()

	table, err := u.source.FetchAll(ctx, u.cfg.SpreadsheetID, u.cfg.SalesTitle)
	if err != nil {
		u.metrics.IncSyncFailure(jobSales)
		return nil, err
	}
	return u.reconcileSales(ctx, table)
}

func (u *syncUseCase) ExportSalesWorkbook(ctx context.Context) ([]byte, error) {
	sales, err := u.sales.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sales for export: %w", err)
	}
	return excel.BuildSalesReport(sales)
}

func (u *syncUseCase) reconcileCarpets(ctx context.Context, job string, table [][]string, deleteMissing bool) (*entity.SyncResult, error) {
	started := time.Now()
	result := &entity.SyncResult{Entity: entityCarpets}

	header, rows, report := splitTable(table)
	if report != "" {
		result.InvalidReport = report
		return result, nil
	}

	valid, invalid := schema.ParseTable(header, rows, schema.ParseCarpetRow)
	result.TotalRows = len(rows)
	result.BadData = len(invalid)
	result.InvalidReport = buildInvalidReport(entityCarpets, invalid)

	err := u.carpets.InTx(ctx, func(repo repository.CarpetRepository) error {
		existing, err := repo.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("loading carpets: %w", err)
		}

		fromSheet := make(map[int64]bool, len(valid))
		for _, row := range valid {
			fromSheet[row.CarpetID] = true

			current, ok := existing[row.CarpetID]
			if !ok {
				carpet := carpetFromRow(row)
				if err := repo.Insert(ctx, carpet); err != nil {
					return fmt.Errorf("inserting carpet %d: %w", row.CarpetID, err)
				}
				existing[row.CarpetID] = carpet
				result.Inserted++
				continue
			}

			fields := carpetChanges(current, row)
			if len(fields) == 0 {
				result.Skipped++
				continue
			}
			if err := repo.UpdateFields(ctx, row.CarpetID, fields); err != nil {
				return fmt.Errorf("updating carpet %d: %w", row.CarpetID, err)
			}
			// Duplicate ids further down the sheet diff against the state
			// just written, not the one loaded at the start.
			existing[row.CarpetID] = carpetFromRow(row)
			result.Updated++
		}

		if deleteMissing {
			var stale []int64
			for id := range existing {
				if !fromSheet[id] {
					stale = append(stale, id)
				}
			}
			if len(stale) > 0 {
				deleted, err := repo.DeleteByIDs(ctx, stale)
				if err != nil {
					return fmt.Errorf("deleting stale carpets: %w", err)
				}
				result.Deleted = int(deleted)
			}
		}
		return nil
	})

	u.metrics.ObserveSyncDuration(job, time.Since(started))
	if err != nil {
		u.metrics.IncSyncFailure(job)
		return nil, err
	}
	u.metrics.IncSyncSuccess(job)

	u.logResult(job, result)
	return result, nil
}

func (u *syncUseCase) reconcileSales(ctx context.Context, table [][]string) (*entity.SyncResult, error) {
	started := time.Now()
	result := &entity.SyncResult{Entity: entitySales}

	header, rows, report := splitTable(table)
	if report != "" {
		result.InvalidReport = report
		return result, nil
	}

	valid, invalid := schema.ParseTable(header, rows, schema.ParseSalesRow)
	result.TotalRows = len(rows)
	result.BadData = len(invalid)
	result.InvalidReport = buildInvalidReport(entitySales, invalid)

	err := u.sales.InTx(ctx, func(repo repository.SaleRepository) error {
		existing, err := repo.LoadAll(ctx)
		if err != nil {
			return fmt.Errorf("loading sales: %w", err)
		}

		for _, row := range valid {
			sale := saleFromRow(row)
			key := sale.Key()

			current, ok := existing[key]
			if !ok {
				if err := repo.Insert(ctx, sale); err != nil {
					return fmt.Errorf("inserting sale of carpet %d on %s: %w", key.CarpetID, key.SaleDate, err)
				}
				existing[key] = sale
				result.Inserted++
				continue
			}

			fields := saleChanges(current, row)
			if len(fields) == 0 {
				result.Skipped++
				continue
			}
			if err := repo.UpdateFields(ctx, current.SaleID, fields); err != nil {
				return fmt.Errorf("updating sale %s: %w", current.SaleID, err)
			}
			sale.SaleID = current.SaleID
			existing[key] = sale
			result.Updated++
		}
		return nil
	})

	u.metrics.ObserveSyncDuration(jobSales, time.Since(started))
	if err != nil {
		u.metrics.IncSyncFailure(jobSales)
		return nil, err
	}
	u.metrics.IncSyncSuccess(jobSales)

	u.logResult(jobSales, result)
	return result, nil
}

func (u *syncUseCase) logResult(job string, result *entity.SyncResult) {
	u.log.Info().
		Str("job", job).
		Int("total", result.TotalRows).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("bad_data", result.BadData).
		Int("deleted", result.Deleted).
		Msg("reconciliation finished")
}

func carpetFromRow(row schema.CarpetRow) *entity.Carpet {
	return &entity.Carpet{
		CarpetID:   row.CarpetID,
		Collection: row.Collection,
		Geometry:   row.Geometry,
		Size:       row.Size,
		Design:     row.Design,
		Color1:     row.Color1,
		Color2:     row.Color2,
		Color3:     row.Color3,
		Style:      row.Style,
		Quantity:   row.Quantity,
		Price:      row.Price,
	}
}

// carpetChanges diffs a stored carpet against its sheet row and returns
// the columns to update. Prices compare within PriceTolerance.
func carpetChanges(current *entity.Carpet, row schema.CarpetRow) map[string]any {
	fields := map[string]any{}
	putString := func(column, have, want string) {
		if have != want {
			fields[column] = want
		}
	}

	putString("collection", current.Collection, row.Collection)
	putString("geometry", current.Geometry, row.Geometry)
	putString("size", current.Size, row.Size)
	putString("design", current.Design, row.Design)
	putString("style", current.Style, row.Style)
	putString("color_1", current.Color1, row.Color1)
	if !equalOptional(current.Color2, row.Color2) {
		fields["color_2"] = row.Color2
	}
	if !equalOptional(current.Color3, row.Color3) {
		fields["color_3"] = row.Color3
	}
	if current.Quantity != row.Quantity {
		fields["quantity"] = row.Quantity
	}
	if !floatEqual(current.Price, row.Price) {
		fields["price"] = row.Price
	}
	return fields
}

func saleFromRow(row schema.SalesRow) *entity.Sale {
	sale := &entity.Sale{
		CarpetID:      row.CarpetID,
		Design:        row.Design,
		Size:          row.Size,
		Collection:    row.Collection,
		Style:         row.Style,
		SaleDate:      row.SaleDate,
		Quantity:      row.Quantity,
		PaymentMethod: row.PaymentMethod,
		BasicPrice:    row.BasicPrice,
		SalePrice:     row.SalePrice,
		Discount:      row.Discount,
		SoldTo:        row.SoldTo,
	}
	if row.Note != "" {
		sale.ExtraInfo = &row.Note
	}
	return sale
}

// saleChanges diffs a stored sale against its sheet row. The business
// key columns never change; everything else can.
func saleChanges(current *entity.Sale, row schema.SalesRow) map[string]any {
	fields := map[string]any{}
	putString := func(column, have, want string) {
		if have != want {
			fields[column] = want
		}
	}
	putFloat := func(column string, have, want float64) {
		if !floatEqual(have, want) {
			fields[column] = want
		}
	}

	putString("design", current.Design, row.Design)
	putString("size", current.Size, row.Size)
	putString("collection", current.Collection, row.Collection)
	putString("style", current.Style, row.Style)
	if current.Quantity != row.Quantity {
		fields["quantity"] = row.Quantity
	}
	if current.PaymentMethod != row.PaymentMethod {
		fields["payment_method"] = string(row.PaymentMethod)
	}
	putFloat("basic_price", current.BasicPrice, row.BasicPrice)
	putFloat("sale_price", current.SalePrice, row.SalePrice)
	putFloat("discount", current.Discount, row.Discount)

	switch note := current.ExtraInfo; {
	case row.Note == "" && note != nil:
		fields["extra_info"] = nil
	case row.Note != "" && (note == nil || *note != row.Note):
		fields["extra_info"] = row.Note
	}
	return fields
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < constants.PriceTolerance
}
