// Package sheets appends audit rows to the spreadsheet shared with the
// farm's agronomist and veterinarian. The ledger is advisory: callers treat
// append failures as warnings, never as operation failures.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/camposoft/tambero/internal/config"
	"github.com/camposoft/tambero/internal/domain/models"
)

const (
	riskAlertsRange = "RiskAlerts!A:F"
	breedingRange   = "Breeding!A:I"
)

// Ledger defines the export operations supported by the spreadsheet adapter.
type Ledger interface {
	AppendRiskAlert(ctx context.Context, alert models.RiskAlert) error
	AppendBreedingMilestones(ctx context.Context, rec models.BreedingRecord) error
}

// GoogleSheetLedger implements the Ledger interface using the official
// Google Sheets API.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger builds a Google Sheets backed ledger instance.
func NewGoogleSheetLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRiskAlert records one sweep finding: plot, species, verdict and the
// factor names behind it.
func (l *GoogleSheetLedger) AppendRiskAlert(ctx context.Context, alert models.RiskAlert) error {
	names := make([]string, 0, len(alert.Assessment.Factors))
	for _, f := range alert.Assessment.Factors {
		names = append(names, f.Factor)
	}

	values := []interface{}{
		alert.Date.Format(models.DateLayout),
		alert.PlotName,
		alert.SpeciesID,
		string(alert.Assessment.Level),
		strings.Join(names, ", "),
		len(alert.Assessment.Factors),
	}
	return l.appendRow(ctx, riskAlertsRange, values)
}

// AppendBreedingMilestones records a finalized breeding record's milestone
// dates so the veterinarian's planning sheet stays in sync.
func (l *GoogleSheetLedger) AppendBreedingMilestones(ctx context.Context, rec models.BreedingRecord) error {
	values := []interface{}{
		rec.AnimalID,
		rec.BullID,
		string(rec.Protocol),
		formatDate(rec.BullEntryDate),
		formatDate(rec.BullExitDate),
		formatDate(rec.PregnancyCheckDate),
		string(rec.PregnancyResult),
		formatDate(rec.InseminationDate),
		formatDate(rec.ExpectedDeliveryDate),
	}
	return l.appendRow(ctx, breedingRange, values)
}

func (l *GoogleSheetLedger) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	l.logger.Debug("row appended to ledger", zap.String("range", sheetRange))
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}
