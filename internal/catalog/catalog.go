// Package catalog stores the records the pricing engine reads: profile
// systems, glass types, charges, accessory pricing, global settings, company
// details and the window preset catalog.
package catalog

import (
	"context"
	"io"

	"github.com/Simplici0/windowquote/internal/pricing"
)

// Settings are the global quotation settings.
type Settings struct {
	GSTRate    float64                 `json:"gstRate"`
	Currency   string                  `json:"currency"`
	Dimensions pricing.DimensionBounds `json:"dimensions"`
}

// Company is printed on every quotation.
type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website,omitempty"`
	GSTIN   string `json:"gstin"`
}

// Preset is a catalog window with a known fixed rate per sq.ft and its
// default size. ListPrice is the published unit price used in catalog mode.
type Preset struct {
	Code            string  `json:"code"`
	Location        string  `json:"location"`
	Name            string  `json:"name"`
	ProfileID       string  `json:"profileId"`
	GlassID         string  `json:"glassId"`
	RatePerSqFt     float64 `json:"ratePerSqFt"`
	DefaultWidth    float64 `json:"defaultWidth"`
	DefaultHeight   float64 `json:"defaultHeight"`
	DefaultQuantity int     `json:"defaultQuantity"`
	ListPrice       float64 `json:"listPrice"`
}

// PresetFilter narrows SearchPresets. Empty fields match everything; Query
// matches code, location or name case-insensitively.
type PresetFilter struct {
	Query     string
	Location  string
	ProfileID string
}

// Catalog is the read/write surface used by the HTTP layer. Store implements
// it on SQLite and Cached adds a Redis snapshot cache in front.
type Catalog interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	SearchPresets(ctx context.Context, f PresetFilter) ([]Preset, error)

	UpsertProfile(ctx context.Context, p pricing.ProfileSystem) error
	UpsertGlass(ctx context.Context, g pricing.GlassType) error
	UpsertPreset(ctx context.Context, p Preset) error
	UpdateCharges(ctx context.Context, c pricing.Charges) error
	UpdateAccessories(ctx context.Context, a pricing.AccessoryPricing) error
	UpdateSettings(ctx context.Context, s Settings) error
	UpdateCompany(ctx context.Context, c Company) error
	Import(ctx context.Context, r io.Reader, format string) (ImportStats, error)
}
