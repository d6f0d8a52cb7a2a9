package main

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/windowquote/internal/apperror"
	"github.com/Simplici0/windowquote/internal/catalog"
	"github.com/Simplici0/windowquote/internal/pricing"
)

const maxImportBytes = 5 << 20

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := s.catalog.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to load catalog")
		return
	}
	writeJSONResponse(w, http.StatusOK, snap)
}

// pathID returns the URL parameter and checks that a body id, if given,
// agrees with it.
func pathID(r *http.Request, param, bodyID string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", apperror.Validation(param+" is required", nil)
	}
	if bodyID != "" && bodyID != id {
		return "", apperror.Validation(fmt.Sprintf("body %s %q does not match path %q", param, bodyID, id), nil)
	}
	return id, nil
}

func (s *server) handleProfileUpsert(w http.ResponseWriter, r *http.Request) {
	var p pricing.ProfileSystem
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeServiceError(w, err, "failed to read profile")
		return
	}
	id, err := pathID(r, "id", p.ID)
	if err != nil {
		s.writeServiceError(w, err, "failed to read profile")
		return
	}
	p.ID = id

	if err := s.catalog.UpsertProfile(r.Context(), p); err != nil {
		s.writeServiceError(w, err, "failed to save profile")
		return
	}
	s.log.WithField("profile", id).Info("profile saved")
	writeJSONResponse(w, http.StatusOK, p)
}

func (s *server) handleGlassUpsert(w http.ResponseWriter, r *http.Request) {
	var g pricing.GlassType
	if err := decodeJSON(w, r, &g); err != nil {
		s.writeServiceError(w, err, "failed to read glass type")
		return
	}
	id, err := pathID(r, "id", g.ID)
	if err != nil {
		s.writeServiceError(w, err, "failed to read glass type")
		return
	}
	g.ID = id

	if err := s.catalog.UpsertGlass(r.Context(), g); err != nil {
		s.writeServiceError(w, err, "failed to save glass type")
		return
	}
	s.log.WithField("glass", id).Info("glass type saved")
	writeJSONResponse(w, http.StatusOK, g)
}

func (s *server) handleChargesUpdate(w http.ResponseWriter, r *http.Request) {
	var c pricing.Charges
	if err := decodeJSON(w, r, &c); err != nil {
		s.writeServiceError(w, err, "failed to read charges")
		return
	}
	if err := s.catalog.UpdateCharges(r.Context(), c); err != nil {
		s.writeServiceError(w, err, "failed to save charges")
		return
	}
	writeJSONResponse(w, http.StatusOK, c)
}

func (s *server) handleAccessoriesUpdate(w http.ResponseWriter, r *http.Request) {
	var a pricing.AccessoryPricing
	if err := decodeJSON(w, r, &a); err != nil {
		s.writeServiceError(w, err, "failed to read accessory pricing")
		return
	}
	if err := s.catalog.UpdateAccessories(r.Context(), a); err != nil {
		s.writeServiceError(w, err, "failed to save accessory pricing")
		return
	}
	writeJSONResponse(w, http.StatusOK, a)
}

func (s *server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var st catalog.Settings
	if err := decodeJSON(w, r, &st); err != nil {
		s.writeServiceError(w, err, "failed to read settings")
		return
	}
	if err := s.catalog.UpdateSettings(r.Context(), st); err != nil {
		s.writeServiceError(w, err, "failed to save settings")
		return
	}
	writeJSONResponse(w, http.StatusOK, st)
}

func (s *server) handleCompanyUpdate(w http.ResponseWriter, r *http.Request) {
	var c catalog.Company
	if err := decodeJSON(w, r, &c); err != nil {
		s.writeServiceError(w, err, "failed to read company details")
		return
	}
	if err := s.catalog.UpdateCompany(r.Context(), c); err != nil {
		s.writeServiceError(w, err, "failed to save company details")
		return
	}
	writeJSONResponse(w, http.StatusOK, c)
}

// importFormat prefers the format query parameter and falls back to the
// request content type. YAML is the default.
func importFormat(r *http.Request) string {
	if f := strings.TrimSpace(r.URL.Query().Get("format")); f != "" {
		return f
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && strings.HasSuffix(mt, "json") {
		return "json"
	}
	return "yaml"
}

func (s *server) handleCatalogImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	format := importFormat(r)

	stats, err := s.catalog.Import(r.Context(), body, format)
	if err != nil {
		s.writeServiceError(w, err, "failed to import catalog")
		return
	}
	s.log.WithField("format", format).WithField("stats", stats).Info("catalog imported")
	writeJSONResponse(w, http.StatusOK, stats)
}

func (s *server) handlePresetsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	presets, err := s.catalog.SearchPresets(r.Context(), catalog.PresetFilter{
		Query:     q.Get("q"),
		Location:  q.Get("location"),
		ProfileID: q.Get("profile"),
	})
	if err != nil {
		s.writeServiceError(w, err, "failed to search presets")
		return
	}
	writeJSONResponse(w, http.StatusOK, presets)
}

type presetDetailResponse struct {
	Preset catalog.Preset     `json:"preset"`
	Input  catalog.QuoteInput `json:"input"`
}

func (s *server) handlePresetDetail(w http.ResponseWriter, r *http.Request) {
	snap, err := s.catalog.Snapshot(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "failed to load catalog")
		return
	}
	code := chi.URLParam(r, "code")
	preset, err := snap.Preset(code)
	if err != nil {
		s.writeServiceError(w, err, "failed to load preset")
		return
	}
	in, err := catalog.ApplyPreset(snap, code)
	if err != nil {
		s.writeServiceError(w, err, "failed to load preset")
		return
	}
	writeJSONResponse(w, http.StatusOK, presetDetailResponse{Preset: preset, Input: in})
}

func (s *server) handlePresetUpsert(w http.ResponseWriter, r *http.Request) {
	var p catalog.Preset
	if err := decodeJSON(w, r, &p); err != nil {
		s.writeServiceError(w, err, "failed to read preset")
		return
	}
	code, err := pathID(r, "code", p.Code)
	if err != nil {
		s.writeServiceError(w, err, "failed to read preset")
		return
	}
	p.Code = code

	if err := s.catalog.UpsertPreset(r.Context(), p); err != nil {
		s.writeServiceError(w, err, "failed to save preset")
		return
	}
	s.log.WithField("preset", code).Info("preset saved")
	writeJSONResponse(w, http.StatusOK, p)
}
