package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/windowquote/internal/apperror"
)

// ErrNotFound is wrapped by Get when no quotation has the reference.
var ErrNotFound = errors.New("quotation not found")

// createdAtLayout sorts lexicographically in time order.
const createdAtLayout = "2006-01-02T15:04:05.000000Z"

type Store struct {
	db     *sql.DB
	now    func() time.Time
	newRef func() string
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:     db,
		now:    time.Now,
		newRef: uuid.NewString,
	}
}

// Save stores a snapshot of the draft under a fresh reference.
func (s *Store) Save(ctx context.Context, d Draft) (Quote, error) {
	if d.Kind != KindWindow && d.Kind != KindCatalog {
		return Quote{}, apperror.Validation(fmt.Sprintf("unknown quotation kind %q", d.Kind), nil)
	}
	total, err := grandTotalOf(d.Result)
	if err != nil {
		return Quote{}, apperror.Validation("quotation result is missing", err)
	}
	input, err := json.Marshal(d.Input)
	if err != nil {
		return Quote{}, fmt.Errorf("marshal quotation input: %w", err)
	}
	result, err := json.Marshal(d.Result)
	if err != nil {
		return Quote{}, fmt.Errorf("marshal quotation result: %w", err)
	}

	q := Quote{
		Reference:  s.newRef(),
		CreatedAt:  s.now().UTC().Truncate(time.Microsecond),
		Title:      strings.TrimSpace(d.Title),
		Customer:   d.Customer,
		Notes:      strings.TrimSpace(d.Notes),
		Kind:       d.Kind,
		Input:      input,
		Result:     result,
		GrandTotal: total,
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO quotations (
			reference, created_at, title, customer_name, customer_contact, customer_email,
			notes, kind, input_json, result_json, grand_total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.Reference, q.CreatedAt.Format(createdAtLayout), q.Title,
		q.Customer.Name, q.Customer.Contact, q.Customer.Email,
		q.Notes, string(q.Kind), string(q.Input), string(q.Result), q.GrandTotal); err != nil {
		return Quote{}, fmt.Errorf("insert quotation: %w", err)
	}

	return q, nil
}

// Get reads a saved quotation by reference.
func (s *Store) Get(ctx context.Context, reference string) (Quote, error) {
	if _, err := uuid.Parse(reference); err != nil {
		return Quote{}, apperror.Validation(fmt.Sprintf("invalid quotation reference %q", reference), err)
	}

	var (
		q               Quote
		createdAt, kind string
		input, result   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT reference, created_at, title, customer_name, customer_contact, customer_email,
		       notes, kind, input_json, result_json, grand_total
		FROM quotations
		WHERE reference = ?
	`, reference).Scan(&q.Reference, &createdAt, &q.Title, &q.Customer.Name, &q.Customer.Contact,
		&q.Customer.Email, &q.Notes, &kind, &input, &result, &q.GrandTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, apperror.NotFound(fmt.Sprintf("quotation %s not found", reference), ErrNotFound)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quotation %s: %w", reference, err)
	}

	if q.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
		return Quote{}, fmt.Errorf("parse created_at of %s: %w", reference, err)
	}
	q.Kind = Kind(kind)
	q.Input = json.RawMessage(input)
	q.Result = json.RawMessage(result)
	return q, nil
}

// List returns saved quotations, newest first. A non-empty query filters on
// title, customer name and notes.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT reference, created_at, title, customer_name, kind, grand_total
		FROM quotations
		WHERE (? = '' OR title LIKE ? OR customer_name LIKE ? OR notes LIKE ?)
		ORDER BY created_at DESC, reference DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotations: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var (
			item            Summary
			createdAt, kind string
		)
		if err := rows.Scan(&item.Reference, &createdAt, &item.Title, &item.CustomerName, &kind, &item.GrandTotal); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		if item.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", item.Reference, err)
		}
		item.Kind = Kind(kind)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotations: %w", err)
	}
	return out, nil
}
