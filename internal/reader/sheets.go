package reader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stockbrief/stock-shorts/internal/apperr"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

const defaultFetchTimeout = 15 * time.Second

type SheetsConfig struct {
	SpreadsheetID string
	ReadRange     string
	APIKey        string
	FetchTimeout  time.Duration
}

func LoadSheetsConfig() (*SheetsConfig, error) {
	cfg := &SheetsConfig{
		SpreadsheetID: os.Getenv("SHEETS_SPREADSHEET_ID"),
		ReadRange:     os.Getenv("SHEETS_READ_RANGE"),
		APIKey:        os.Getenv("SHEETS_API_KEY"),
		FetchTimeout:  defaultFetchTimeout,
	}
	if cfg.ReadRange == "" {
		cfg.ReadRange = "Sheet1!A2:N"
	}
	if raw := os.Getenv("SHEETS_FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SHEETS_FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID environment variable is not set")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("SHEETS_API_KEY environment variable is not set")
	}
	return cfg, nil
}

// SheetsSource reads article rows from a Google Sheet via the values API.
type SheetsSource struct {
	svc *sheets.Service
	cfg *SheetsConfig
}

func NewSheetsSource(ctx context.Context, cfg *SheetsConfig) (*SheetsSource, error) {
	svc, err := sheets.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{svc: svc, cfg: cfg}, nil
}

func (s *SheetsSource) FetchRows(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	resp, err := s.svc.Spreadsheets.Values.
		Get(s.cfg.SpreadsheetID, s.cfg.ReadRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperr.NewSource("fetch", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}

	slog.Debug("Fetched sheet rows", "count", len(rows), "range", s.cfg.ReadRange)
	return rows, nil
}
