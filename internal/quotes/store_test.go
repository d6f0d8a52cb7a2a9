package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Simplici0/windowquote/internal/apperror"
	"github.com/Simplici0/windowquote/internal/db"
	"github.com/Simplici0/windowquote/internal/migrations"
	"github.com/Simplici0/windowquote/internal/pricing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(db.MemoryPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := migrations.Up(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := NewStore(database)
	clock := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store
}

func windowResult(t *testing.T) (WindowInput, pricing.Result) {
	t.Helper()

	profile := &pricing.ProfileSystem{
		ID:             "MC45",
		Name:           "MC45 (Luxury Line Casement System)",
		WeightPerMeter: 2.5,
		BasePrice:      1500,
		ScaledPricing: pricing.ScaledPricing{
			VerySmall:  pricing.Tier{Threshold: 10, PricePerSqFt: 2600},
			Small:      pricing.Tier{Threshold: 30, PricePerSqFt: 2200},
			Medium:     pricing.Tier{Threshold: 80, PricePerSqFt: 2000},
			Large:      pricing.Tier{Threshold: 150, PricePerSqFt: 1850},
			ExtraLarge: pricing.Tier{PricePerSqFt: 1700},
		},
		SupportsPleatedMesh: true,
	}
	glass := &pricing.GlassType{ID: "frosted-5mm", Name: "5mm Frosted Toughened Glass", Surcharge: 100, WeightPerSqFt: 2}
	opts := pricing.Options{IncludeTransportation: true, IncludeLoadingUnloading: true}

	res, err := pricing.Calculate(pricing.Request{
		Dimensions:  pricing.Dimensions{Width: 1200, Height: 1500},
		Profile:     profile,
		Glass:       glass,
		Quantity:    1,
		Options:     opts,
		Charges:     pricing.Charges{Transportation: 5000, LoadingUnloading: 2000, InstallationPerWindow: 100},
		Accessories: pricing.AccessoryPricing{PleatedMesh: 1500, PremiumFinishing: 800},
		Tax:         pricing.TaxConfig{GSTRate: 18},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	in := WindowInput{
		ProfileID:   profile.ID,
		ProfileName: profile.Name,
		GlassID:     glass.ID,
		GlassName:   glass.Name,
		Width:       1200,
		Height:      1500,
		Quantity:    1,
		Options:     opts,
	}
	return in, res
}

func TestSaveAndGet_RoundTripsSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	in, res := windowResult(t)

	saved, err := store.Save(ctx, Draft{
		Title:    "  Villa 12 living room  ",
		Customer: Customer{Name: "R. Sharma", Contact: "+91 90000 00000", Email: "sharma@example.com"},
		Notes:    "Deliver before Diwali",
		Kind:     KindWindow,
		Input:    in,
		Result:   res,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Title != "Villa 12 living room" || saved.GrandTotal != 60843.86 {
		t.Fatalf("unexpected saved quote %+v", saved)
	}

	got, err := store.Get(ctx, saved.Reference)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) || got.Customer != saved.Customer || got.Kind != KindWindow {
		t.Fatalf("Get = %+v, want %+v", got, saved)
	}

	stored, err := got.WindowResult()
	if err != nil {
		t.Fatalf("WindowResult: %v", err)
	}
	if stored != res {
		t.Fatalf("stored result differs:\n got %+v\nwant %+v", stored, res)
	}
	if _, err := got.CatalogResult(); err == nil {
		t.Fatalf("expected kind mismatch error")
	}
}

func TestGet_DoesNotRecalculate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	in, res := windowResult(t)

	saved, err := store.Save(ctx, Draft{Kind: KindWindow, Input: in, Result: res})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.db.Exec(`UPDATE quotations SET result_json = json_set(result_json, '$.grandTotal', 1.23) WHERE reference = ?`, saved.Reference); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	got, err := store.Get(ctx, saved.Reference)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stored, _ := got.WindowResult()
	if stored.GrandTotal != 1.23 {
		t.Fatalf("expected the stored snapshot, got grand total %v", stored.GrandTotal)
	}
}

func TestGet_Errors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "not-a-uuid")
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = store.Get(ctx, "6f1c1f5e-4c4b-4bb8-9a43-2d3b6f0d9c11")
	if !errors.Is(err, ErrNotFound) || !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSave_Rejects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, Draft{Kind: "door", Result: pricing.Result{}}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for kind, got %v", err)
	}
	if _, err := store.Save(ctx, Draft{Kind: KindWindow, Result: "oops"}); !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("expected validation error for result, got %v", err)
	}
}

func TestList_FiltersAndOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	in, res := windowResult(t)

	for i, title := range []string{"Kitchen", "Library", "Kitchen annex"} {
		d := Draft{Title: title, Kind: KindWindow, Input: in, Result: res}
		if i == 1 {
			d.Customer.Name = "Kitchenware Ltd"
		}
		if _, err := store.Save(ctx, d); err != nil {
			t.Fatalf("Save %s: %v", title, err)
		}
	}
	if _, err := store.Save(ctx, Draft{Title: "Catalog order", Notes: "kitchen windows", Kind: KindCatalog, Result: pricing.CatalogResult{GrandTotal: 100}}); err != nil {
		t.Fatalf("Save catalog: %v", err)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 || all[0].Title != "Catalog order" || all[3].Title != "Kitchen" {
		t.Fatalf("unexpected order: %+v", titles(all))
	}
	if all[0].Kind != KindCatalog || all[0].GrandTotal != 100 {
		t.Fatalf("unexpected summary %+v", all[0])
	}

	matched, err := store.List(ctx, "kitchen")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(matched) != 4 {
		t.Fatalf("expected title, customer and notes matches, got %v", titles(matched))
	}

	none, err := store.List(ctx, "garage")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", none)
	}
}

func titles(items []Summary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprintf("%s@%s", it.Title, it.CreatedAt.Format(time.RFC3339))
	}
	return out
}


func TestSave_ReportsInsertFailure(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer database.Close()

	mock.ExpectExec("INSERT INTO quotations").WillReturnError(errors.New("disk I/O error"))

	store := NewStore(database)
	_, res := windowResult(t)
	_, err = store.Save(context.Background(), Draft{Kind: KindWindow, Result: res})
	if err == nil || !strings.Contains(err.Error(), "insert quotation") {
		t.Fatalf("expected insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
