package pricing

import "github.com/Simplici0/windowquote/internal/money"

// CatalogLine is a list-priced window picked from the preset catalog.
type CatalogLine struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// CatalogRequest prices a selection of catalog windows as one quotation.
type CatalogRequest struct {
	Lines                   []CatalogLine
	Charges                 Charges
	IncludeTransportation   bool
	IncludeLoadingUnloading bool
	Tax                     TaxConfig
}

// CatalogLineResult is a priced catalog line.
type CatalogLineResult struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

// CatalogResult is the priced catalog selection.
type CatalogResult struct {
	Lines                []CatalogLineResult `json:"lines"`
	LinesTotal           float64             `json:"linesTotal"`
	TransportationCharge float64             `json:"transportationCharge"`
	LoadingCharge        float64             `json:"loadingCharge"`
	Taxable              float64             `json:"taxable"`
	GSTRate              float64             `json:"gstRate"`
	GSTAmount            float64             `json:"gstAmount"`
	GrandTotal           float64             `json:"grandTotal"`
}

// QuoteCatalog sums catalog lines, adds flat logistics and applies GST once
// on the taxable amount.
func QuoteCatalog(req CatalogRequest) (CatalogResult, error) {
	if len(req.Lines) == 0 {
		return CatalogResult{}, invalidQuantity("at least one catalog line is required")
	}
	if err := CheckRate("transportation", req.Charges.Transportation); err != nil {
		return CatalogResult{}, err
	}
	if err := CheckRate("loadingUnloading", req.Charges.LoadingUnloading); err != nil {
		return CatalogResult{}, err
	}
	if err := CheckRate("gstRate", req.Tax.GSTRate); err != nil {
		return CatalogResult{}, err
	}

	seen := make(map[string]struct{}, len(req.Lines))
	for _, line := range req.Lines {
		if _, dup := seen[line.Code]; dup {
			return CatalogResult{}, validationError(ErrDuplicateLine, "window %s is listed more than once", line.Code)
		}
		seen[line.Code] = struct{}{}

		if line.Quantity <= 0 {
			return CatalogResult{}, invalidQuantity("quantity for %s must be a positive integer, got %d", line.Code, line.Quantity)
		}
		if err := CheckRate("unit price of "+line.Code, line.UnitPrice); err != nil {
			return CatalogResult{}, err
		}
	}

	lines := make([]CatalogLineResult, 0, len(req.Lines))
	linesTotal := 0.0
	for _, line := range req.Lines {
		amount := line.UnitPrice * float64(line.Quantity)
		linesTotal += amount
		lines = append(lines, CatalogLineResult{
			Code:        line.Code,
			Description: line.Description,
			UnitPrice:   money.Round2(line.UnitPrice),
			Quantity:    line.Quantity,
			Amount:      money.Round2(amount),
		})
	}

	transportation := 0.0
	if req.IncludeTransportation {
		transportation = req.Charges.Transportation
	}
	loading := 0.0
	if req.IncludeLoadingUnloading {
		loading = req.Charges.LoadingUnloading
	}

	taxable := linesTotal + transportation + loading
	gst := taxable * (req.Tax.GSTRate / 100)
	if !finite(taxable + gst) {
		return CatalogResult{}, invalidRate("catalog quotation total overflows: reduce the quantities or prices")
	}

	return CatalogResult{
		Lines:                lines,
		LinesTotal:           money.Round2(linesTotal),
		TransportationCharge: money.Round2(transportation),
		LoadingCharge:        money.Round2(loading),
		Taxable:              money.Round2(taxable),
		GSTRate:              req.Tax.GSTRate,
		GSTAmount:            money.Round2(gst),
		GrandTotal:           money.Round2(taxable + gst),
	}, nil
}
