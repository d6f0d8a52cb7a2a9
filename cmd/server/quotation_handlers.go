package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/pricing"
	"github.com/Simplici0/windowquote/internal/quotes"
)

type calculateResponse struct {
	Input  quotes.WindowInput `json:"input"`
	Result pricing.Result     `json:"result"`
}

// priceWindow resolves the request against the current catalog and prices it.
func (s *server) priceWindow(ctx context.Context, req windowQuoteRequest) (quotes.WindowInput, pricing.Result, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return quotes.WindowInput{}, pricing.Result{}, err
	}
	in, err := req.toInput(snap)
	if err != nil {
		return quotes.WindowInput{}, pricing.Result{}, err
	}
	preq, err := catalog.BuildRequest(snap, in)
	if err != nil {
		return quotes.WindowInput{}, pricing.Result{}, err
	}
	res, err := pricing.Calculate(preq)
	if err != nil {
		return quotes.WindowInput{}, pricing.Result{}, err
	}

	return quotes.WindowInput{
		ProfileID:         in.ProfileID,
		ProfileName:       preq.Profile.Name,
		GlassID:           in.GlassID,
		GlassName:         preq.Glass.Name,
		Width:             in.Width,
		Height:            in.Height,
		Quantity:          in.Quantity,
		Options:           in.Options,
		UnitPriceOverride: in.UnitPriceOverride,
		PresetCode:        in.PresetCode,
	}, res, nil
}

func (s *server) handleQuotationCalculate(w http.ResponseWriter, r *http.Request) {
	var req windowQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, err, "failed to read quotation")
		return
	}
	in, res, err := s.priceWindow(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err, "failed to calculate quotation")
		return
	}
	writeJSONResponse(w, http.StatusOK, calculateResponse{Input: in, Result: res})
}

func (s *server) handleQuotationCreate(w http.ResponseWriter, r *http.Request) {
	var req saveQuotationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, err, "failed to read quotation")
		return
	}
	in, res, err := s.priceWindow(r.Context(), req.windowQuoteRequest)
	if err != nil {
		s.writeServiceError(w, err, "failed to calculate quotation")
		return
	}

	s.saveAndRespond(w, r, quotes.Draft{
		Title:    req.Title,
		Customer: req.Customer,
		Notes:    req.Notes,
		Kind:     quotes.KindWindow,
		Input:    in,
		Result:   res,
	})
}

func (s *server) handleCatalogQuote(w http.ResponseWriter, r *http.Request) {
	var req catalogQuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(w, err, "failed to read catalog quotation")
		return
	}
	selections, err := req.selections()
	if err != nil {
		s.writeServiceError(w, err, "failed to read catalog quotation")
		return
	}

	snap, err := s.catalog.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to load catalog")
		return
	}
	lines, err := catalog.CatalogLines(snap, selections)
	if err != nil {
		s.writeServiceError(w, err, "failed to price catalog quotation")
		return
	}
	res, err := pricing.QuoteCatalog(pricing.CatalogRequest{
		Lines:                   lines,
		Charges:                 snap.Charges,
		IncludeTransportation:   req.IncludeTransportation,
		IncludeLoadingUnloading: req.IncludeLoadingUnloading,
		Tax:                     snap.Tax(),
	})
	if err != nil {
		s.writeServiceError(w, err, "failed to price catalog quotation")
		return
	}

	if !req.Save {
		writeJSONResponse(w, http.StatusOK, res)
		return
	}
	s.saveAndRespond(w, r, quotes.Draft{
		Title:    req.Title,
		Customer: req.Customer,
		Notes:    req.Notes,
		Kind:     quotes.KindCatalog,
		Input:    selections,
		Result:   res,
	})
}

// saveAndRespond stores the draft and announces it. A failed publish is
// logged; the quotation stays saved.
func (s *server) saveAndRespond(w http.ResponseWriter, r *http.Request, d quotes.Draft) {
	q, err := s.quotes.Save(r.Context(), d)
	if err != nil {
		s.writeServiceError(w, err, "failed to save quotation")
		return
	}
	if err := s.events.PublishQuotationSaved(r.Context(), q); err != nil {
		s.log.WithError(err).WithField("reference", q.Reference).Warn("failed to publish quotation event")
	}
	s.log.WithField("reference", q.Reference).WithField("kind", q.Kind).Info("quotation saved")
	writeJSONResponse(w, http.StatusCreated, q)
}

func (s *server) handleQuotationsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.quotes.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeServiceError(w, err, "failed to list quotations")
		return
	}
	writeJSONResponse(w, http.StatusOK, items)
}

func (s *server) handleQuotationDetail(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeServiceError(w, err, "failed to load quotation")
		return
	}
	writeJSONResponse(w, http.StatusOK, q)
}

// loadForRender reads a quotation and the company details printed on it.
func (s *server) loadForRender(ctx context.Context, ref string) (quotes.Quote, catalog.Company, error) {
	q, err := s.quotes.Get(ctx, ref)
	if err != nil {
		return quotes.Quote{}, catalog.Company{}, err
	}
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return quotes.Quote{}, catalog.Company{}, err
	}
	return q, snap.Company, nil
}

func (s *server) handleQuotationText(w http.ResponseWriter, r *http.Request) {
	q, company, err := s.loadForRender(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeServiceError(w, err, "failed to load quotation")
		return
	}
	text, err := quotes.RenderText(q, company)
	if err != nil {
		s.writeServiceError(w, err, "failed to render quotation")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (s *server) handleQuotationExcel(w http.ResponseWriter, r *http.Request) {
	q, company, err := s.loadForRender(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeServiceError(w, err, "failed to load quotation")
		return
	}
	data, err := quotes.ExportExcel(q, company)
	if err != nil {
		s.writeServiceError(w, err, "failed to export quotation")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="quotation-`+q.Reference+`.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
