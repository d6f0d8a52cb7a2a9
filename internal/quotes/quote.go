// Package quotes keeps priced quotations and renders them for customers.
// A stored quotation is a snapshot: reading it back never recalculates.
package quotes

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Simplici0/windowquote/internal/pricing"
)

// Kind tells which engine produced a quotation.
type Kind string

const (
	KindWindow  Kind = "window"
	KindCatalog Kind = "catalog"
)

type Customer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// WindowInput records what was priced in a window quotation, with the
// catalog names resolved at the time.
type WindowInput struct {
	ProfileID         string          `json:"profileId"`
	ProfileName       string          `json:"profileName"`
	GlassID           string          `json:"glassId"`
	GlassName         string          `json:"glassName"`
	Width             float64         `json:"width"`
	Height            float64         `json:"height"`
	Quantity          int             `json:"quantity"`
	Options           pricing.Options `json:"options"`
	UnitPriceOverride *float64        `json:"unitPriceOverride,omitempty"`
	PresetCode        string          `json:"presetCode,omitempty"`
}

// Draft is a quotation that has not been saved yet.
type Draft struct {
	Title    string
	Customer Customer
	Notes    string
	Kind     Kind
	Input    any
	Result   any
}

// Quote is a saved quotation.
type Quote struct {
	Reference  string          `json:"reference"`
	CreatedAt  time.Time       `json:"createdAt"`
	Title      string          `json:"title"`
	Customer   Customer        `json:"customer"`
	Notes      string          `json:"notes"`
	Kind       Kind            `json:"kind"`
	Input      json.RawMessage `json:"input"`
	Result     json.RawMessage `json:"result"`
	GrandTotal float64         `json:"grandTotal"`
}

// Summary is a row of the quotation history.
type Summary struct {
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"createdAt"`
	Title        string    `json:"title"`
	CustomerName string    `json:"customerName"`
	Kind         Kind      `json:"kind"`
	GrandTotal   float64   `json:"grandTotal"`
}

func (q Quote) WindowInput() (WindowInput, error) {
	var in WindowInput
	if err := q.decode(KindWindow, q.Input, &in); err != nil {
		return WindowInput{}, err
	}
	return in, nil
}

func (q Quote) WindowResult() (pricing.Result, error) {
	var res pricing.Result
	if err := q.decode(KindWindow, q.Result, &res); err != nil {
		return pricing.Result{}, err
	}
	return res, nil
}

func (q Quote) CatalogResult() (pricing.CatalogResult, error) {
	var res pricing.CatalogResult
	if err := q.decode(KindCatalog, q.Result, &res); err != nil {
		return pricing.CatalogResult{}, err
	}
	return res, nil
}

func (q Quote) decode(want Kind, raw json.RawMessage, dst any) error {
	if q.Kind != want {
		return fmt.Errorf("quotation %s is a %s quotation, not %s", q.Reference, q.Kind, want)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode quotation %s: %w", q.Reference, err)
	}
	return nil
}

// grandTotalOf reads the grand total of a window or catalog result.
func grandTotalOf(result any) (float64, error) {
	switch r := result.(type) {
	case pricing.Result:
		return r.GrandTotal, nil
	case *pricing.Result:
		return r.GrandTotal, nil
	case pricing.CatalogResult:
		return r.GrandTotal, nil
	case *pricing.CatalogResult:
		return r.GrandTotal, nil
	}
	return 0, fmt.Errorf("unsupported quotation result %T", result)
}
