// Package catalog imports shop catalog exports (XLSX) into the store.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/iamerkut/search/internal/models"
	"github.com/iamerkut/search/internal/storage"
)

// Sheet names expected in a catalog workbook. A missing sheet is skipped.
const (
	SheetProducts      = "Products"
	SheetCategories    = "Categories"
	SheetManufacturers = "Manufacturers"
)

// Importer loads catalog workbooks into the store.
type Importer struct {
	store  storage.Store
	logger *zap.Logger
}

// Summary reports one import job.
type Summary struct {
	JobID         string
	Products      int
	Categories    int
	Manufacturers int
}

// NewImporter creates an importer with the given dependencies.
func NewImporter(store storage.Store, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

// ImportWorkbook reads the Products, Categories, and Manufacturers sheets of
// the workbook at path and inserts their rows. The first row of each sheet is
// a header and is skipped. Each sheet is inserted in one transaction.
func (i *Importer) ImportWorkbook(ctx context.Context, path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	summary := &Summary{JobID: uuid.NewString()}
	i.logger.Info("catalog import started",
		zap.String("job_id", summary.JobID),
		zap.String("path", path),
	)

	products, err := i.readSheet(f, SheetProducts)
	if err != nil {
		return nil, err
	}
	if products != nil {
		records := make([]models.ProductRecord, 0, len(products))
		for _, row := range products {
			records = append(records, models.ProductRecord{
				Name:           cell(row, 0),
				ArticleNumber:  cell(row, 1),
				SearchKeywords: cell(row, 2),
				Slug:           cell(row, 3),
			})
		}
		summary.Products, err = i.store.BatchInsertProducts(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("failed to import products: %w", err)
		}
	}

	categories, err := i.readSheet(f, SheetCategories)
	if err != nil {
		return nil, err
	}
	if categories != nil {
		records := make([]models.CategoryRecord, 0, len(categories))
		for _, row := range categories {
			records = append(records, models.CategoryRecord{
				Name: cell(row, 0),
				Slug: cell(row, 1),
			})
		}
		summary.Categories, err = i.store.BatchInsertCategories(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("failed to import categories: %w", err)
		}
	}

	manufacturers, err := i.readSheet(f, SheetManufacturers)
	if err != nil {
		return nil, err
	}
	if manufacturers != nil {
		records := make([]models.ManufacturerRecord, 0, len(manufacturers))
		for _, row := range manufacturers {
			records = append(records, models.ManufacturerRecord{
				Name: cell(row, 0),
				Slug: cell(row, 1),
			})
		}
		summary.Manufacturers, err = i.store.BatchInsertManufacturers(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("failed to import manufacturers: %w", err)
		}
	}

	i.logger.Info("catalog import finished",
		zap.String("job_id", summary.JobID),
		zap.Int("products", summary.Products),
		zap.Int("categories", summary.Categories),
		zap.Int("manufacturers", summary.Manufacturers),
	)
	return summary, nil
}

// readSheet returns the data rows of a sheet without its header row, or nil
// when the sheet does not exist.
func (i *Importer) readSheet(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %s: %w", sheet, err)
	}
	if idx < 0 {
		i.logger.Warn("workbook sheet missing, skipping", zap.String("sheet", sheet))
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
