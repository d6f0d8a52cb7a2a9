package quotes

import (
	"fmt"
	"strings"

	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/money"
	"github.com/Simplici0/windowquote/internal/pricing"
)

const dateLayout = "02 Jan 2006"

type docLine struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Amount      float64
}

type docTotal struct {
	Label  string
	Amount float64
}

// document is the layout-neutral form shared by the text and spreadsheet
// renderers.
type document struct {
	Company   catalog.Company
	Reference string
	Date      string
	Title     string
	Customer  Customer
	Notes     string
	Details   []string
	Lines     []docLine
	Totals    []docTotal
}

func buildDocument(q Quote, company catalog.Company) (document, error) {
	doc := document{
		Company:   company,
		Reference: q.Reference,
		Date:      q.CreatedAt.Format(dateLayout),
		Title:     q.Title,
		Customer:  q.Customer,
		Notes:     q.Notes,
	}

	switch q.Kind {
	case KindWindow:
		in, err := q.WindowInput()
		if err != nil {
			return document{}, err
		}
		res, err := q.WindowResult()
		if err != nil {
			return document{}, err
		}
		fillWindow(&doc, in, res)
	case KindCatalog:
		res, err := q.CatalogResult()
		if err != nil {
			return document{}, err
		}
		fillCatalog(&doc, res)
	default:
		return document{}, fmt.Errorf("quotation %s has unknown kind %q", q.Reference, q.Kind)
	}
	return doc, nil
}

func fillWindow(doc *document, in WindowInput, res pricing.Result) {
	rate := fmt.Sprintf("Rate: %s per sq.ft (%s tier)", money.FormatINR(res.PricePerSqFt), res.Tier)
	if res.OverrideApplied {
		rate = fmt.Sprintf("Rate: %s per sq.ft (fixed rate, glass included)", money.FormatINR(res.PricePerSqFt))
	}
	doc.Details = []string{
		fmt.Sprintf("Profile: %s", nameOr(in.ProfileName, in.ProfileID)),
		fmt.Sprintf("Glass: %s", nameOr(in.GlassName, in.GlassID)),
		fmt.Sprintf("Size: %g x %g mm (%.3f sq.ft, perimeter %.3f m)", in.Width, in.Height, res.AreaSqFt, res.PerimeterMeter),
		rate,
		fmt.Sprintf("Weight per window: %.3f kg (frame %.3f kg, glass %.3f kg)", res.MaterialWeight, res.FrameWeight, res.GlassWeight),
	}
	if in.PresetCode != "" {
		doc.Details = append(doc.Details, "Window schedule: "+in.PresetCode)
	}

	qty := res.Quantity
	doc.Lines = append(doc.Lines, docLine{
		Description: fmt.Sprintf("%s window, %s, %g x %g mm", nameOr(in.ProfileID, in.ProfileName), nameOr(in.GlassName, in.GlassID), in.Width, in.Height),
		Quantity:    qty,
		UnitPrice:   res.UnitPrice,
		Amount:      res.TotalValue,
	})
	if res.TotalAccessoryCost > 0 {
		doc.Lines = append(doc.Lines, docLine{
			Description: accessoryLabel(in.Options),
			Quantity:    qty,
			UnitPrice:   res.AccessoryCostPerUnit,
			Amount:      res.TotalAccessoryCost,
		})
	}
	if res.InstallationCharge > 0 {
		doc.Lines = append(doc.Lines, docLine{
			Description: "Installation",
			Quantity:    qty,
			UnitPrice:   money.Round2(res.InstallationCharge / float64(qty)),
			Amount:      res.InstallationCharge,
		})
	}
	doc.Lines = appendLogistics(doc.Lines, res.TransportationCharge, res.LoadingCharge)

	doc.Totals = []docTotal{
		{"Subtotal", res.Subtotal},
		{gstLabel(res.GSTRate), res.GSTAmount},
		{"Grand total", res.GrandTotal},
	}
}

func fillCatalog(doc *document, res pricing.CatalogResult) {
	for _, l := range res.Lines {
		doc.Lines = append(doc.Lines, docLine{
			Description: l.Code + " " + l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}
	doc.Lines = appendLogistics(doc.Lines, res.TransportationCharge, res.LoadingCharge)

	doc.Totals = []docTotal{
		{"Windows", res.LinesTotal},
		{"Taxable amount", res.Taxable},
		{gstLabel(res.GSTRate), res.GSTAmount},
		{"Grand total", res.GrandTotal},
	}
}

func appendLogistics(lines []docLine, transportation, loading float64) []docLine {
	if transportation > 0 {
		lines = append(lines, docLine{"Transportation", 1, transportation, transportation})
	}
	if loading > 0 {
		lines = append(lines, docLine{"Loading and unloading", 1, loading, loading})
	}
	return lines
}

func accessoryLabel(o pricing.Options) string {
	var parts []string
	if o.IncludeMesh {
		parts = append(parts, "pleated mesh")
	}
	if o.PremiumFinishing {
		parts = append(parts, "premium finishing")
	}
	if len(parts) == 0 {
		return "Accessories"
	}
	return "Accessories: " + strings.Join(parts, ", ")
}

func gstLabel(rate float64) string {
	return fmt.Sprintf("GST (%g%%)", rate)
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fallback
}
