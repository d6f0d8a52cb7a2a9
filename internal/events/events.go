// Package events publishes quotation lifecycle events to Kafka.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/windowquote/internal/quotes"
)

type Type string

const TypeQuotationSaved Type = "quotation.saved"

// Event is the envelope written to the topic.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// QuotationSaved is the payload of TypeQuotationSaved.
type QuotationSaved struct {
	Reference    string      `json:"reference"`
	Kind         quotes.Kind `json:"kind"`
	Title        string      `json:"title,omitempty"`
	CustomerName string      `json:"customerName,omitempty"`
	ProfileID    string      `json:"profileId,omitempty"`
	Quantity     int         `json:"quantity"`
	GrandTotal   float64     `json:"grandTotal"`
}

// NewQuotationSaved summarises a saved quotation. Quantity is the window
// count: the line quantity for a window quote, the sum of lines otherwise.
func NewQuotationSaved(q quotes.Quote) QuotationSaved {
	ev := QuotationSaved{
		Reference:    q.Reference,
		Kind:         q.Kind,
		Title:        q.Title,
		CustomerName: q.Customer.Name,
		GrandTotal:   q.GrandTotal,
	}
	switch q.Kind {
	case quotes.KindWindow:
		if in, err := q.WindowInput(); err == nil {
			ev.ProfileID = in.ProfileID
			ev.Quantity = in.Quantity
		}
	case quotes.KindCatalog:
		if res, err := q.CatalogResult(); err == nil {
			for _, l := range res.Lines {
				ev.Quantity += l.Quantity
			}
		}
	}
	return ev
}
