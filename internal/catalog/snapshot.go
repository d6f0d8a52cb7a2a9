package catalog

import (
	"github.com/Simplici0/windowquote/internal/pricing"
)

// Snapshot is a consistent, read-only view of the whole catalog at one
// version. Callers must not modify it.
type Snapshot struct {
	Version     int64                    `json:"version"`
	Profiles    []pricing.ProfileSystem  `json:"profiles"`
	Glass       []pricing.GlassType      `json:"glassTypes"`
	Charges     pricing.Charges          `json:"charges"`
	Accessories pricing.AccessoryPricing `json:"accessories"`
	Settings    Settings                 `json:"settings"`
	Company     Company                  `json:"company"`
	Presets     []Preset                 `json:"presets"`
}

// Profile returns a copy of the profile with the given id.
func (s *Snapshot) Profile(id string) (*pricing.ProfileSystem, error) {
	if id == "" {
		return nil, pricing.MissingRecord("profile", "")
	}
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			p := s.Profiles[i]
			return &p, nil
		}
	}
	return nil, pricing.MissingRecord("profile", id)
}

// GlassType returns a copy of the glass type with the given id.
func (s *Snapshot) GlassType(id string) (*pricing.GlassType, error) {
	if id == "" {
		return nil, pricing.MissingRecord("glass type", "")
	}
	for i := range s.Glass {
		if s.Glass[i].ID == id {
			g := s.Glass[i]
			return &g, nil
		}
	}
	return nil, pricing.MissingRecord("glass type", id)
}

// Preset returns the preset with the given code.
func (s *Snapshot) Preset(code string) (Preset, error) {
	for _, p := range s.Presets {
		if p.Code == code {
			return p, nil
		}
	}
	return Preset{}, pricing.MissingRecord("preset", code)
}

// Tax returns the GST configuration.
func (s *Snapshot) Tax() pricing.TaxConfig {
	return pricing.TaxConfig{GSTRate: s.Settings.GSTRate}
}
