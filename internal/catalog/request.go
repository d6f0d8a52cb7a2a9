package catalog

import (
	"github.com/Simplici0/windowquote/internal/pricing"
)

// QuoteInput is a pricing request expressed with catalog ids.
type QuoteInput struct {
	ProfileID         string          `json:"profileId"`
	GlassID           string          `json:"glassId"`
	Width             float64         `json:"width"`
	Height            float64         `json:"height"`
	Quantity          int             `json:"quantity"`
	Options           pricing.Options `json:"options"`
	UnitPriceOverride *float64        `json:"unitPriceOverride,omitempty"`
	PresetCode        string          `json:"presetCode,omitempty"`
}

// BuildRequest resolves the ids of in against the snapshot and fills in the
// catalog's charges, accessory pricing, GST rate and dimension bounds.
func BuildRequest(s *Snapshot, in QuoteInput) (pricing.Request, error) {
	profile, err := s.Profile(in.ProfileID)
	if err != nil {
		return pricing.Request{}, err
	}
	glass, err := s.GlassType(in.GlassID)
	if err != nil {
		return pricing.Request{}, err
	}

	bounds := s.Settings.Dimensions
	return pricing.Request{
		Dimensions:        pricing.Dimensions{Width: in.Width, Height: in.Height},
		Bounds:            &bounds,
		Profile:           profile,
		Glass:             glass,
		Quantity:          in.Quantity,
		Options:           in.Options,
		Charges:           s.Charges,
		Accessories:       s.Accessories,
		Tax:               s.Tax(),
		UnitPriceOverride: in.UnitPriceOverride,
	}, nil
}

// ApplyPreset returns an input pre-filled from the preset: its profile,
// glass, default size and quantity, with its fixed rate as the override.
func ApplyPreset(s *Snapshot, code string) (QuoteInput, error) {
	p, err := s.Preset(code)
	if err != nil {
		return QuoteInput{}, err
	}
	rate := p.RatePerSqFt
	qty := p.DefaultQuantity
	if qty <= 0 {
		qty = 1
	}
	return QuoteInput{
		ProfileID:         p.ProfileID,
		GlassID:           p.GlassID,
		Width:             p.DefaultWidth,
		Height:            p.DefaultHeight,
		Quantity:          qty,
		UnitPriceOverride: &rate,
		PresetCode:        p.Code,
	}, nil
}

// Selection picks a quantity of one preset for a catalog-mode quote.
type Selection struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// CatalogLines turns selections into catalog-mode lines priced at each
// preset's list price. Quantities are checked by pricing.QuoteCatalog.
func CatalogLines(s *Snapshot, selections []Selection) ([]pricing.CatalogLine, error) {
	lines := make([]pricing.CatalogLine, 0, len(selections))
	for _, sel := range selections {
		p, err := s.Preset(sel.Code)
		if err != nil {
			return nil, err
		}
		lines = append(lines, pricing.CatalogLine{
			Code:        p.Code,
			Description: p.Name,
			UnitPrice:   p.ListPrice,
			Quantity:    sel.Quantity,
		})
	}
	return lines, nil
}
