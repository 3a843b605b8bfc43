// Package export writes standardized listings to local files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ewalker/gpuscout/internal/model"
)

var csvHeader = []string{
	"title", "marketplace", "price_text", "standardized_price",
	"gpu_manufacturer", "gpu_series", "gpu_model", "vram_gb",
	"card_manufacturer", "confidence_score", "condition", "location",
	"listing_type", "seller_info", "shipping", "posted_date",
	"url", "image_url", "is_sold", "is_featured", "scraped_at",
}

// CSVWriter implements the ReportWriter interface with a local CSV file.
// Compliance results are ignored; they go to their own text report.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a writer that will create (or truncate) the CSV
// file at path on Write. Intermediate directories are created
// automatically.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the output file path.
func (c *CSVWriter) Path() string {
	return c.path
}

// Write writes all listings to the CSV file with a header row.
func (c *CSVWriter) Write(ctx context.Context, listings []model.StandardizedListing, _ map[string]*model.ComplianceReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		if err := w.Write(listingRow(l)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}

	return f.Close()
}

func listingRow(l model.StandardizedListing) []string {
	price := ""
	if l.StandardizedPrice != nil {
		price = strconv.FormatFloat(*l.StandardizedPrice, 'f', 2, 64)
	}
	vram := ""
	if l.VRAMGb != nil {
		vram = strconv.Itoa(*l.VRAMGb)
	}
	vendor := ""
	if l.CardManufacturer != nil {
		vendor = *l.CardManufacturer
	}

	return []string{
		l.Title,
		l.Marketplace,
		l.PriceText,
		price,
		string(l.GPUManufacturer),
		l.GPUSeries,
		l.GPUModel,
		vram,
		vendor,
		strconv.FormatFloat(l.ConfidenceScore, 'f', 2, 64),
		l.Condition,
		l.Location,
		l.ListingType,
		l.SellerInfo,
		l.Shipping,
		l.PostedDate,
		l.URL,
		l.ImageURL,
		strconv.FormatBool(l.IsSold),
		strconv.FormatBool(l.IsFeatured),
		l.ScrapedAt.Format(time.RFC3339),
	}
}
