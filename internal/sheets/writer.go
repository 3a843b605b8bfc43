package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/model"
	"github.com/ewalker/gpuscout/internal/service"
	"github.com/ewalker/gpuscout/internal/standardize"
)

// Writer implements the ReportWriter interface for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write implements the ReportWriter interface. The spreadsheet gets a
// listings tab, a summary tab with batch statistics, and a compliance
// tab when compliance results were collected.
func (w *Writer) Write(ctx context.Context, listings []model.StandardizedListing, compliance map[string]*model.ComplianceReport) error {
	w.logger.Info("starting report generation", "listings", len(listings))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := w.prepareReportData(listings, compliance)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)

	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID)
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report generation completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to read service account key file: %v", common.ErrSheetsAuth, err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to parse service account key: %v", common.ErrSheetsAuth, err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    fmt.Sprintf("%s %s", w.config.SpreadsheetName, time.Now().Format("2006-01-02")),
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "GPU Listings",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays out summary statistics, the listings table and
// the compliance section as one value grid.
func (w *Writer) prepareReportData(listings []model.StandardizedListing, compliance map[string]*model.ComplianceReport) [][]any {
	stats := standardize.ComputeStats(listings)

	estimatedRows := 20 + len(listings) + len(compliance)*6
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{"GPU Market Report", time.Now().Format("Jan 2, 2006 15:04")},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Listings", stats.TotalListings},
		[]any{"Price Extraction Rate", fmt.Sprintf("%.1f%%", stats.PriceExtractionRate)},
		[]any{"GPU Identification Rate", fmt.Sprintf("%.1f%%", stats.GPUIdentificationRate)},
		[]any{"VRAM Extraction Rate", fmt.Sprintf("%.1f%%", stats.VRAMExtractionRate)},
		[]any{"Vendor Identification Rate", fmt.Sprintf("%.1f%%", stats.VendorIdentifiedRate)},
		[]any{"Mean Confidence", stats.AvgConfidenceScore},
		[]any{},
		[]any{"Listings"},
		[]any{
			"Title", "Marketplace", "Price", "Std Price", "Manufacturer",
			"Series", "Model", "VRAM (GB)", "Card Vendor", "Condition",
			"Location", "URL", "Posted", "Scraped At",
		})

	// Cheapest first; unpriced listings sink to the bottom.
	sorted := make([]model.StandardizedListing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].StandardizedPrice, sorted[j].StandardizedPrice
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})

	for _, l := range sorted {
		values = append(values, []any{
			l.Title,
			l.Marketplace,
			l.PriceText,
			optFloat(l.StandardizedPrice),
			string(l.GPUManufacturer),
			l.GPUSeries,
			l.GPUModel,
			optInt(l.VRAMGb),
			optString(l.CardManufacturer),
			l.Condition,
			l.Location,
			l.URL,
			l.PostedDate,
			l.ScrapedAt.Format("2006-01-02 15:04"),
		})
	}

	if len(compliance) > 0 {
		values = append(values,
			[]any{},
			[]any{"Compliance"},
			[]any{"Site", "Robots Allowed", "ToS Concerns", "Rate Limits"})

		sites := make([]string, 0, len(compliance))
		for site := range compliance {
			sites = append(sites, site)
		}
		sort.Strings(sites)

		for _, site := range sites {
			report := compliance[site]
			values = append(values, []any{
				site,
				report.RobotsAllowed,
				len(report.ToSConcerns),
				len(report.RateLimits),
			})
		}
	}

	return values
}

// writeData writes the data to the spreadsheet in batches.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		valueRange := &sheets.ValueRange{
			Values: values[i:end],
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", end-i)
	}

	return nil
}

// applyFormatting bolds the report title and section headers.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   14,
				},
			},
		},
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()

	return err
}

func optFloat(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}

func optInt(i *int) any {
	if i == nil {
		return ""
	}
	return *i
}

func optString(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}
