package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/windowquote/internal/pricing"
	"github.com/Simplici0/windowquote/internal/quotes"
)

func standardWindow() map[string]any {
	return map[string]any{
		"profileId": "MC45",
		"glassId":   "frosted-5mm",
		"width":     1200,
		"height":    1500,
		"quantity":  1,
		"options": map[string]bool{
			"includeTransportation":   true,
			"includeLoadingUnloading": true,
		},
	}
}

func TestCalculate_StandardWindow(t *testing.T) {
	srv, pub := newTestServer(t)

	rr := doRequest(t, srv.routes(), http.MethodPost, "/api/quotations/calculate", standardWindow())
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp calculateResponse
	decodeBody(t, rr, &resp)
	if resp.Result.Tier != pricing.TierSmall || resp.Result.UnitPrice != 44562.59 || resp.Result.GrandTotal != 60843.86 {
		t.Fatalf("unexpected result %+v", resp.Result)
	}
	if resp.Input.ProfileName != "MC45 (Luxury Line Casement System)" || resp.Input.GlassName != "5mm Frosted Toughened Glass" {
		t.Fatalf("names not resolved: %+v", resp.Input)
	}
	if len(pub.saved) != 0 {
		t.Fatalf("calculate must not publish events")
	}

	list := doRequest(t, srv.routes(), http.MethodGet, "/api/quotations", nil)
	var items []quotes.Summary
	decodeBody(t, list, &items)
	if len(items) != 0 {
		t.Fatalf("calculate must not persist, got %+v", items)
	}
}

func TestCalculate_PresetUsesFixedRate(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(t, srv.routes(), http.MethodPost, "/api/quotations/calculate", map[string]any{"presetCode": "W01"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp calculateResponse
	decodeBody(t, rr, &resp)
	if resp.Result.Tier != pricing.TierOverride || resp.Result.GlassCost != 0 {
		t.Fatalf("expected override pricing, got %+v", resp.Result)
	}
	if resp.Result.AreaSqFt != 44.891 || resp.Result.UnitPrice != 93264.14 || resp.Result.GrandTotal != 110051.69 {
		t.Fatalf("unexpected preset result %+v", resp.Result)
	}
	if resp.Input.PresetCode != "W01" || resp.Input.Quantity != 1 {
		t.Fatalf("unexpected input %+v", resp.Input)
	}

	// an explicit quantity replaces the preset default
	body := map[string]any{"presetCode": "W01", "quantity": 3}
	rr = doRequest(t, srv.routes(), http.MethodPost, "/api/quotations/calculate", body)
	decodeBody(t, rr, &resp)
	if resp.Result.Quantity != 3 || resp.Result.TotalValue != 279792.42 {
		t.Fatalf("unexpected result for three windows %+v", resp.Result)
	}
}

func TestCalculate_Rejects(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	cases := []struct {
		name   string
		mutate func(map[string]any)
		status int
	}{
		{"fractional quantity", func(b map[string]any) { b["quantity"] = 1.5 }, http.StatusBadRequest},
		{"zero quantity", func(b map[string]any) { b["quantity"] = 0 }, http.StatusBadRequest},
		{"missing quantity", func(b map[string]any) { delete(b, "quantity") }, http.StatusBadRequest},
		{"zero width", func(b map[string]any) { b["width"] = 0 }, http.StatusBadRequest},
		{"too tall", func(b map[string]any) { b["height"] = 6000 }, http.StatusBadRequest},
		{"negative override", func(b map[string]any) { b["unitPriceOverride"] = -5 }, http.StatusBadRequest},
		{"unknown profile", func(b map[string]any) { b["profileId"] = "XX99" }, http.StatusNotFound},
		{"unknown glass", func(b map[string]any) { b["glassId"] = "stained" }, http.StatusNotFound},
		{"unknown preset", func(b map[string]any) { b["presetCode"] = "W99" }, http.StatusNotFound},
		{"preset with zero width", func(b map[string]any) {
			b["presetCode"] = "W01"
			b["width"] = 0
		}, http.StatusBadRequest},
		{"preset with zero height", func(b map[string]any) {
			b["presetCode"] = "W01"
			b["height"] = 0
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := standardWindow()
			tc.mutate(body)
			rr := doRequest(t, h, http.MethodPost, "/api/quotations/calculate", body)
			expectError(t, rr, tc.status)
		})
	}
}

func TestCreateQuotation_PersistsAndPublishes(t *testing.T) {
	srv, pub := newTestServer(t)

	body := standardWindow()
	body["title"] = "Villa 12"
	body["customer"] = map[string]string{"name": "R. Sharma", "contact": "+91 90000 00000"}
	body["notes"] = "Deliver before Diwali"

	rr := doRequest(t, srv.routes(), http.MethodPost, "/api/quotations", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var q quotes.Quote
	decodeBody(t, rr, &q)
	if q.Reference == "" || q.Kind != quotes.KindWindow || q.GrandTotal != 60843.86 || q.Customer.Name != "R. Sharma" {
		t.Fatalf("unexpected quotation %+v", q)
	}
	if len(pub.saved) != 1 || pub.saved[0].Reference != q.Reference {
		t.Fatalf("expected one published event for %s, got %+v", q.Reference, pub.saved)
	}
}

func TestCreateQuotation_PublishFailureKeepsQuotation(t *testing.T) {
	srv, pub := newTestServer(t)
	pub.err = errors.New("kafka: client has run out of available brokers")

	rr := doRequest(t, srv.routes(), http.MethodPost, "/api/quotations", standardWindow())
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var q quotes.Quote
	decodeBody(t, rr, &q)

	detail := doRequest(t, srv.routes(), http.MethodGet, "/api/quotations/"+q.Reference, nil)
	if detail.Code != http.StatusOK {
		t.Fatalf("expected saved quotation, got %d", detail.Code)
	}
}

func TestListQuotations_FiltersNewestFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	for _, title := range []string{"Casa Verma", "Office block", "Casa Rao"} {
		body := standardWindow()
		body["title"] = title
		if rr := doRequest(t, h, http.MethodPost, "/api/quotations", body); rr.Code != http.StatusCreated {
			t.Fatalf("create %s: %d %s", title, rr.Code, rr.Body.String())
		}
	}

	var items []quotes.Summary
	decodeBody(t, doRequest(t, h, http.MethodGet, "/api/quotations", nil), &items)
	if len(items) != 3 || items[0].Title != "Casa Rao" || items[2].Title != "Casa Verma" {
		t.Fatalf("unexpected order %+v", items)
	}

	decodeBody(t, doRequest(t, h, http.MethodGet, "/api/quotations?q=casa", nil), &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %+v", items)
	}
}

func TestQuotationDetail_ReadsSnapshotWithoutRecalculation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	rr := doRequest(t, h, http.MethodPost, "/api/quotations", standardWindow())
	var saved quotes.Quote
	decodeBody(t, rr, &saved)

	// a later price change must not alter the stored quotation
	if rr := doRequest(t, h, http.MethodPut, "/api/catalog/charges", pricing.Charges{Transportation: 9000, LoadingUnloading: 2000, InstallationPerWindow: 100}); rr.Code != http.StatusOK {
		t.Fatalf("update charges: %d %s", rr.Code, rr.Body.String())
	}

	detail := doRequest(t, h, http.MethodGet, "/api/quotations/"+saved.Reference, nil)
	var got quotes.Quote
	decodeBody(t, detail, &got)
	res, err := got.WindowResult()
	if err != nil {
		t.Fatalf("WindowResult: %v", err)
	}
	if res.TransportationCharge != 5000 || res.GrandTotal != 60843.86 {
		t.Fatalf("stored quotation was recalculated: %+v", res)
	}
}

func TestQuotationDetail_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	expectError(t, doRequest(t, h, http.MethodGet, "/api/quotations/not-a-reference", nil), http.StatusBadRequest)
	expectError(t, doRequest(t, h, http.MethodGet, "/api/quotations/6f1c1f5e-4c4b-4bb8-9a43-2d3b6f0d9c11", nil), http.StatusNotFound)
	expectError(t, doRequest(t, h, http.MethodGet, "/api/quotations/6f1c1f5e-4c4b-4bb8-9a43-2d3b6f0d9c11/text", nil), http.StatusNotFound)
}

func TestQuotationText_ReturnsPlainText(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	body := standardWindow()
	body["notes"] = "Valid for 15 days"
	var saved quotes.Quote
	decodeBody(t, doRequest(t, h, http.MethodPost, "/api/quotations", body), &saved)

	rr := doRequest(t, h, http.MethodGet, "/api/quotations/"+saved.Reference+"/text", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}
	for _, expected := range []string{"Mega Profile", "QUOTATION " + saved.Reference, "Grand total:", "₹60,843.86", "Valid for 15 days"} {
		if !strings.Contains(rr.Body.String(), expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, rr.Body.String())
		}
	}
}

func TestQuotationExcel_ReturnsWorkbook(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	var saved quotes.Quote
	decodeBody(t, doRequest(t, h, http.MethodPost, "/api/quotations", standardWindow()), &saved)

	rr := doRequest(t, h, http.MethodGet, "/api/quotations/"+saved.Reference+"/xlsx", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), saved.Reference+".xlsx") {
		t.Fatalf("unexpected disposition %q", rr.Header().Get("Content-Disposition"))
	}

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Quotation", "A1"); v != "Mega Profile" {
		t.Fatalf("A1 = %q", v)
	}
}

func TestCatalogQuote(t *testing.T) {
	srv, pub := newTestServer(t)
	h := srv.routes()

	body := map[string]any{
		"lines": []map[string]any{
			{"code": "W01", "quantity": 1},
			{"code": "W04", "quantity": 2},
		},
		"includeTransportation":   true,
		"includeLoadingUnloading": true,
	}

	rr := doRequest(t, h, http.MethodPost, "/api/catalog-quotes", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res pricing.CatalogResult
	decodeBody(t, rr, &res)
	if res.LinesTotal != 168856.47 || res.Taxable != 175856.47 || res.GSTAmount != 31654.16 || res.GrandTotal != 207510.63 {
		t.Fatalf("unexpected catalog totals %+v", res)
	}
	if len(pub.saved) != 0 {
		t.Fatalf("unsaved catalog quote must not publish")
	}

	body["save"] = true
	body["title"] = "Site order"
	rr = doRequest(t, h, http.MethodPost, "/api/catalog-quotes", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var q quotes.Quote
	decodeBody(t, rr, &q)
	if q.Kind != quotes.KindCatalog || q.GrandTotal != 207510.63 || len(pub.saved) != 1 {
		t.Fatalf("unexpected saved catalog quotation %+v", q)
	}

	text := doRequest(t, h, http.MethodGet, "/api/quotations/"+q.Reference+"/text", nil)
	if !strings.Contains(text.Body.String(), "₹2,07,510.63") {
		t.Fatalf("catalog text missing grand total: %s", text.Body.String())
	}
}

func TestCatalogQuote_Rejects(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	cases := []struct {
		name   string
		lines  []map[string]any
		status int
	}{
		{"no lines", []map[string]any{}, http.StatusBadRequest},
		{"fractional quantity", []map[string]any{{"code": "W01", "quantity": 0.5}}, http.StatusBadRequest},
		{"duplicate code", []map[string]any{{"code": "W01", "quantity": 1}, {"code": "W01", "quantity": 2}}, http.StatusBadRequest},
		{"blank code", []map[string]any{{"code": " ", "quantity": 1}}, http.StatusBadRequest},
		{"unknown code", []map[string]any{{"code": "W24", "quantity": 1}}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodPost, "/api/catalog-quotes", map[string]any{"lines": tc.lines})
			expectError(t, rr, tc.status)
		})
	}
}
