package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"hallbook/internal/config"
	"hallbook/internal/domain/models"
)

// Exporter appends monthly report rows to an external spreadsheet.
type Exporter interface {
	AppendReport(ctx context.Context, rows []models.MonthlyReport) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	reportRange   string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		reportRange:   cfg.ReportRange,
		logger:        logger,
	}, nil
}

// AppendReport appends one row per monthly bucket to the report range.
func (e *GoogleSheetExporter) AppendReport(ctx context.Context, rows []models.MonthlyReport) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{
			r.MonthKey, r.MonthName, r.ContractCount, r.CustomerTotal, r.InternalTotal,
		})
	}

	payload := &sheetsapi.ValueRange{Values: values}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.reportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report into range %s: %w", e.reportRange, err)
	}

	e.logger.Debug("report rows appended to sheet",
		zap.String("range", e.reportRange),
		zap.Int("rows", len(values)))
	return nil
}
