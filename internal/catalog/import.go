package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/Simplici0/windowquote/internal/apperror"
	"github.com/Simplici0/windowquote/internal/pricing"
)

// Document is a bulk catalog import. Sections left out are not touched.
type Document struct {
	Profiles    []pricing.ProfileSystem
	GlassTypes  []pricing.GlassType
	Presets     []Preset
	Charges     *pricing.Charges
	Accessories *pricing.AccessoryPricing
	Settings    *Settings
	Company     *Company
}

// ImportStats counts what an import wrote.
type ImportStats struct {
	Profiles    int  `json:"profiles"`
	GlassTypes  int  `json:"glassTypes"`
	Presets     int  `json:"presets"`
	Charges     bool `json:"charges"`
	Accessories bool `json:"accessories"`
	Settings    bool `json:"settings"`
	Company     bool `json:"company"`
}

// ParseDocument decodes a YAML or JSON catalog document.
func ParseDocument(r io.Reader, format string) (Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "yml":
		format = "yaml"
	case "yaml", "json":
	default:
		return Document{}, apperror.Validation(fmt.Sprintf("unsupported import format %q", format), nil)
	}

	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return Document{}, apperror.Validation("catalog document is not valid "+format, err)
	}

	var doc Document
	if err := v.Unmarshal(&doc, viper.DecodeHook(wholeNumbers)); err != nil {
		return Document{}, apperror.Validation("catalog document has an unexpected shape: "+err.Error(), err)
	}
	return doc, nil
}

// wholeNumbers refuses to truncate a fractional number into an integer
// field such as a preset's default quantity.
func wholeNumbers(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch n := data.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return data, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: expected a whole number, got %v", pricing.ErrInvalidQuantity, f)
	}
	return data, nil
}

func (d Document) validate() error {
	for _, p := range d.Profiles {
		if err := validateProfile(p); err != nil {
			return err
		}
	}
	for _, g := range d.GlassTypes {
		if err := required("glass id", g.ID); err != nil {
			return err
		}
		if err := g.Validate(); err != nil {
			return err
		}
	}
	for _, p := range d.Presets {
		if err := validatePreset(p); err != nil {
			return err
		}
	}
	if d.Charges != nil {
		if err := validateCharges(*d.Charges); err != nil {
			return err
		}
	}
	if d.Accessories != nil {
		if err := validateAccessories(*d.Accessories); err != nil {
			return err
		}
	}
	if d.Settings != nil {
		if err := validateSettings(*d.Settings); err != nil {
			return err
		}
	}
	if d.Company != nil {
		if err := required("company name", d.Company.Name); err != nil {
			return err
		}
	}
	return nil
}

// Import applies a catalog document in one transaction: either every
// section is written or none is.
func (s *Store) Import(ctx context.Context, r io.Reader, format string) (ImportStats, error) {
	doc, err := ParseDocument(r, format)
	if err != nil {
		return ImportStats{}, err
	}
	if err := doc.validate(); err != nil {
		return ImportStats{}, err
	}

	stats := ImportStats{}
	err = s.write(ctx, "catalog import", func(tx *sql.Tx) error {
		for _, p := range doc.Profiles {
			if err := upsertProfile(ctx, tx, p); err != nil {
				return err
			}
			stats.Profiles++
		}
		for _, g := range doc.GlassTypes {
			if g.Name == "" {
				g.Name = g.ID
			}
			if err := upsertGlass(ctx, tx, g); err != nil {
				return err
			}
			stats.GlassTypes++
		}
		for _, p := range doc.Presets {
			if err := upsertPreset(ctx, tx, p); err != nil {
				return err
			}
			stats.Presets++
		}
		if doc.Charges != nil {
			if err := updateCharges(ctx, tx, *doc.Charges); err != nil {
				return err
			}
			stats.Charges = true
		}
		if doc.Accessories != nil {
			if err := updateAccessories(ctx, tx, *doc.Accessories); err != nil {
				return err
			}
			stats.Accessories = true
		}
		if doc.Settings != nil {
			st := *doc.Settings
			if st.Currency == "" {
				st.Currency = "INR"
			}
			if err := updateSettings(ctx, tx, st); err != nil {
				return err
			}
			stats.Settings = true
		}
		if doc.Company != nil {
			if err := updateCompany(ctx, tx, *doc.Company); err != nil {
				return err
			}
			stats.Company = true
		}
		return nil
	})
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}
