package model

import "time"

// RawListing is a single listing as emitted by a marketplace collector.
// Title is the only required field; everything else is best-effort and
// passes through standardization unchanged.
type RawListing struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price,omitempty"`
	Condition   string    `json:"condition,omitempty"`
	URL         string    `json:"url,omitempty"`
	Marketplace string    `json:"marketplace,omitempty"`
	Source      string    `json:"source,omitempty"`
	ScrapedAt   time.Time `json:"scraped_at,omitempty"`
	ListingType string    `json:"listing_type,omitempty"`
	Location    string    `json:"location,omitempty"`
	SellerInfo  string    `json:"seller_info,omitempty"`
	Shipping    string    `json:"shipping,omitempty"`
	PostedDate  string    `json:"posted_date,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SearchTerm  string    `json:"search_term,omitempty"`
	IsSold      bool      `json:"is_sold,omitempty"`
	IsFeatured  bool      `json:"is_featured,omitempty"`
}

// MarketplaceName returns the marketplace field, falling back to the
// collector source tag when a site parser did not set one.
func (r *RawListing) MarketplaceName() string {
	if r.Marketplace != "" {
		return r.Marketplace
	}
	return r.Source
}

// StandardizedListing is the canonical record produced from one accepted
// raw listing. It is immutable after creation.
type StandardizedListing struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	PriceText         string       `json:"price_text"`
	StandardizedPrice *float64     `json:"standardized_price"`
	GPUManufacturer   Manufacturer `json:"gpu_manufacturer"`
	GPUSeries         string       `json:"gpu_series"`
	GPUModel          string       `json:"gpu_model"`
	VRAMGb            *int         `json:"vram_gb"`
	CardManufacturer  *string      `json:"card_manufacturer"`
	ConfidenceScore   float64      `json:"confidence_score"`
	URL               string       `json:"url"`
	Marketplace       string       `json:"marketplace"`
	ScrapedAt         time.Time    `json:"scraped_at"`
	ListingType       string       `json:"listing_type"`
	Condition         string       `json:"condition"`
	Location          string       `json:"location"`
	SellerInfo        string       `json:"seller_info"`
	Shipping          string       `json:"shipping"`
	PostedDate        string       `json:"posted_date"`
	ImageURL          string       `json:"image_url"`
	IsSold            bool         `json:"is_sold"`
	IsFeatured        bool         `json:"is_featured"`
}

// Identity reconstructs the GPUIdentity embedded in the listing.
func (s *StandardizedListing) Identity() GPUIdentity {
	return GPUIdentity{
		Manufacturer: s.GPUManufacturer,
		Series:       s.GPUSeries,
		Model:        s.GPUModel,
		VRAMGb:       s.VRAMGb,
		CardVendor:   s.CardManufacturer,
		Confidence:   s.ConfidenceScore,
	}
}
