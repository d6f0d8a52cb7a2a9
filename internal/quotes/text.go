package quotes

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/money"
)

// RenderText renders a saved quotation as plain text.
func RenderText(q Quote, company catalog.Company) (string, error) {
	doc, err := buildDocument(q, company)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeHeader(&b, doc)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDescription\tQty\tUnit price\tAmount\t")
	for i, l := range doc.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t\n", i+1, l.Description, l.Quantity, money.FormatINR(l.UnitPrice), money.FormatINR(l.Amount))
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	for _, t := range doc.Totals {
		fmt.Fprintf(tw, "\t\t\t%s:\t%s\t\n", t.Label, money.FormatINR(t.Amount))
	}
	if err := tw.Flush(); err != nil {
		return "", fmt.Errorf("render quotation table: %w", err)
	}

	if doc.Notes != "" {
		fmt.Fprintf(&b, "\nNotes:\n%s\n", doc.Notes)
	}
	return b.String(), nil
}

func writeHeader(b *strings.Builder, doc document) {
	c := doc.Company
	if c.Name != "" {
		fmt.Fprintln(b, c.Name)
	}
	if c.Address != "" {
		fmt.Fprintln(b, c.Address)
	}
	var contact []string
	for _, v := range []string{c.Phone, c.Email, c.Website} {
		if v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		fmt.Fprintln(b, strings.Join(contact, " | "))
	}
	if c.GSTIN != "" {
		fmt.Fprintf(b, "GSTIN: %s\n", c.GSTIN)
	}

	fmt.Fprintf(b, "\nQUOTATION %s\n", doc.Reference)
	fmt.Fprintf(b, "Date: %s\n", doc.Date)
	if doc.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", doc.Title)
	}
	if cust := customerLine(doc.Customer); cust != "" {
		fmt.Fprintf(b, "Customer: %s\n", cust)
	}
	if len(doc.Details) > 0 {
		b.WriteString("\n")
		for _, d := range doc.Details {
			fmt.Fprintln(b, d)
		}
	}
	b.WriteString("\n")
}

func customerLine(c Customer) string {
	var parts []string
	for _, v := range []string{c.Name, c.Contact, c.Email} {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
