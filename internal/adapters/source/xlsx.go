package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/carver/wishforge/internal/domain/model"
	"github.com/carver/wishforge/pkg/logger"
)

// Workbook reads curated entries from a local XLSX export of the curated
// spreadsheet. Every sheet is expected to follow the same tab layout the
// online spreadsheet uses; sheets without the required headers contribute
// nothing.
type Workbook struct {
	path   string
	logger logger.Logger
}

// NewWorkbook creates a provider reading the workbook at path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{
		path:   path,
		logger: logger.Get().Named("workbook"),
	}
}

// ListEntries parses every sheet of the workbook.
func (w *Workbook) ListEntries(ctx context.Context) ([]model.RawEntry, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrSource, w.path, err)
	}
	defer f.Close()

	var entries []model.RawEntry
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			w.logger.Warn(ctx, "failed to read sheet",
				logger.String("sheet", sheet),
				logger.Error(err),
			)
			continue
		}

		parsed := parseRows(rows)
		w.logger.Info(ctx, "parsed sheet",
			logger.String("sheet", sheet),
			logger.Int("entries", len(parsed)),
		)
		entries = append(entries, parsed...)
	}
	return entries, nil
}
