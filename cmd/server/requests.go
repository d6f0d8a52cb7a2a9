package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/Simplici0/windowquote/internal/apperror"
	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/pricing"
	"github.com/Simplici0/windowquote/internal/quotes"
)

// windowQuoteRequest prices one window line. With PresetCode set, the
// preset's profile, glass, size, quantity and fixed rate are the defaults
// and any field given in the request replaces them. Sizes given as zero are
// kept so that pricing rejects them.
type windowQuoteRequest struct {
	PresetCode        string          `json:"presetCode"`
	ProfileID         string          `json:"profileId"`
	GlassID           string          `json:"glassId"`
	Width             *float64        `json:"width"`
	Height            *float64        `json:"height"`
	Quantity          *float64        `json:"quantity"`
	Options           pricing.Options `json:"options"`
	UnitPriceOverride *float64        `json:"unitPriceOverride"`
}

type saveQuotationRequest struct {
	Title    string          `json:"title"`
	Customer quotes.Customer `json:"customer"`
	Notes    string          `json:"notes"`
	windowQuoteRequest
}

type catalogSelection struct {
	Code     string   `json:"code"`
	Quantity *float64 `json:"quantity"`
}

type catalogQuoteRequest struct {
	Title                   string             `json:"title"`
	Customer                quotes.Customer    `json:"customer"`
	Notes                   string             `json:"notes"`
	Lines                   []catalogSelection `json:"lines"`
	IncludeTransportation   bool               `json:"includeTransportation"`
	IncludeLoadingUnloading bool               `json:"includeLoadingUnloading"`
	Save                    bool               `json:"save"`
}

// parseQuantity accepts a JSON number only when it is a positive integer.
func parseQuantity(field string, v *float64) (int, error) {
	if v == nil {
		return 0, quantityError(field + " is required")
	}
	q := *v
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) {
		return 0, quantityError(fmt.Sprintf("%s must be a whole number, got %v", field, q))
	}
	if q <= 0 || q > math.MaxInt32 {
		return 0, quantityError(fmt.Sprintf("%s must be a positive integer, got %v", field, q))
	}
	return int(q), nil
}

func quantityError(msg string) error {
	return apperror.Validation(msg, fmt.Errorf("%w: %s", pricing.ErrInvalidQuantity, msg))
}

// toInput resolves the request against the snapshot's presets.
func (req windowQuoteRequest) toInput(snap *catalog.Snapshot) (catalog.QuoteInput, error) {
	var in catalog.QuoteInput
	code := strings.TrimSpace(req.PresetCode)
	if code != "" {
		var err error
		if in, err = catalog.ApplyPreset(snap, code); err != nil {
			return catalog.QuoteInput{}, err
		}
	}

	if req.ProfileID != "" {
		in.ProfileID = req.ProfileID
	}
	if req.GlassID != "" {
		in.GlassID = req.GlassID
	}
	if req.Width != nil {
		in.Width = *req.Width
	}
	if req.Height != nil {
		in.Height = *req.Height
	}
	if req.UnitPriceOverride != nil {
		in.UnitPriceOverride = req.UnitPriceOverride
	}
	if req.Quantity != nil || code == "" {
		qty, err := parseQuantity("quantity", req.Quantity)
		if err != nil {
			return catalog.QuoteInput{}, err
		}
		in.Quantity = qty
	}
	in.Options = req.Options
	return in, nil
}

func (req catalogQuoteRequest) selections() ([]catalog.Selection, error) {
	out := make([]catalog.Selection, 0, len(req.Lines))
	for i, l := range req.Lines {
		code := strings.TrimSpace(l.Code)
		if code == "" {
			return nil, apperror.Validation(fmt.Sprintf("lines[%d].code is required", i), nil)
		}
		qty, err := parseQuantity(fmt.Sprintf("quantity of %s", code), l.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.Selection{Code: code, Quantity: qty})
	}
	return out, nil
}
