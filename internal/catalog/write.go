package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/Simplici0/windowquote/internal/apperror"
	"github.com/Simplici0/windowquote/internal/pricing"
)

// write runs fn in a transaction and bumps the catalog version on success.
func (s *Store) write(ctx context.Context, action string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", action, err)
	}

	if err := ensureSettingsRow(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE catalog_settings SET version = version + 1, updated_at = datetime('now') WHERE id = 1`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("bump catalog version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", action, err)
	}
	return nil
}

func ensureSettingsRow(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO catalog_settings (id) VALUES (1)`); err != nil {
		return fmt.Errorf("ensure catalog settings row: %w", err)
	}
	return nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperror.Validation(field+" is required", nil)
	}
	return nil
}

func validateProfile(p pricing.ProfileSystem) error {
	if err := required("profile id", p.ID); err != nil {
		return err
	}
	if err := required("profile name", p.Name); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	rows := tierRows(p.ScaledPricing)
	for i := 1; i < len(rows)-1; i++ {
		if rows[i].tier.Threshold <= rows[i-1].tier.Threshold {
			msg := fmt.Sprintf("%s threshold must be greater than %s threshold", rows[i].name, rows[i-1].name)
			return apperror.Validation(msg, fmt.Errorf("%w: %s", pricing.ErrInvalidRate, msg))
		}
	}
	return nil
}

// UpsertProfile inserts or replaces a profile system and its tier table.
func (s *Store) UpsertProfile(ctx context.Context, p pricing.ProfileSystem) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	return s.write(ctx, "profile upsert", func(tx *sql.Tx) error {
		return upsertProfile(ctx, tx, p)
	})
}

func upsertProfile(ctx context.Context, tx *sql.Tx, p pricing.ProfileSystem) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, description, frame_size, window_types, accessories,
		                      weight_per_meter, base_price, supports_pleated_mesh)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			frame_size = excluded.frame_size,
			window_types = excluded.window_types,
			accessories = excluded.accessories,
			weight_per_meter = excluded.weight_per_meter,
			base_price = excluded.base_price,
			supports_pleated_mesh = excluded.supports_pleated_mesh,
			updated_at = datetime('now')
	`, p.ID, p.Name, p.Description, p.FrameSize, encodeList(p.WindowTypes), encodeList(p.Accessories),
		p.WeightPerMeter, p.BasePrice, p.SupportsPleatedMesh); err != nil {
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_tiers WHERE profile_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear tiers of %s: %w", p.ID, err)
	}
	for _, row := range tierRows(p.ScaledPricing) {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profile_tiers (profile_id, tier, position, threshold, price_per_sqft)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID, string(row.name), row.position, row.tier.Threshold, row.tier.PricePerSqFt); err != nil {
			return fmt.Errorf("insert %s tier of %s: %w", row.name, p.ID, err)
		}
	}
	return nil
}

// UpsertGlass inserts or replaces a glass type.
func (s *Store) UpsertGlass(ctx context.Context, g pricing.GlassType) error {
	if err := required("glass id", g.ID); err != nil {
		return err
	}
	if err := required("glass name", g.Name); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	return s.write(ctx, "glass upsert", func(tx *sql.Tx) error {
		return upsertGlass(ctx, tx, g)
	})
}

func upsertGlass(ctx context.Context, tx *sql.Tx, g pricing.GlassType) error {
	var mul sql.NullFloat64
	if g.ScaleMultiplier != nil {
		mul = sql.NullFloat64{Float64: *g.ScaleMultiplier, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO glass_types (id, name, surcharge, weight_per_sqft, scale_multiplier)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			surcharge = excluded.surcharge,
			weight_per_sqft = excluded.weight_per_sqft,
			scale_multiplier = excluded.scale_multiplier,
			updated_at = datetime('now')
	`, g.ID, g.Name, g.Surcharge, g.WeightPerSqFt, mul); err != nil {
		return fmt.Errorf("upsert glass type %s: %w", g.ID, err)
	}
	return nil
}

func validatePreset(p Preset) error {
	if err := required("preset code", p.Code); err != nil {
		return err
	}
	if err := required("preset name", p.Name); err != nil {
		return err
	}
	if err := pricing.CheckRate("preset ratePerSqFt", p.RatePerSqFt); err != nil {
		return err
	}
	if err := pricing.CheckRate("preset listPrice", p.ListPrice); err != nil {
		return err
	}
	if !(p.DefaultWidth > 0) || !(p.DefaultHeight > 0) {
		msg := fmt.Sprintf("preset %s default size must be positive", p.Code)
		return apperror.Validation(msg, fmt.Errorf("%w: %s", pricing.ErrInvalidDimension, msg))
	}
	if p.DefaultQuantity <= 0 {
		msg := fmt.Sprintf("preset %s default quantity must be a positive integer", p.Code)
		return apperror.Validation(msg, fmt.Errorf("%w: %s", pricing.ErrInvalidQuantity, msg))
	}
	return nil
}

// UpsertPreset inserts or replaces a window preset. Its profile and glass
// must already exist.
func (s *Store) UpsertPreset(ctx context.Context, p Preset) error {
	if err := validatePreset(p); err != nil {
		return err
	}
	return s.write(ctx, "preset upsert", func(tx *sql.Tx) error {
		return upsertPreset(ctx, tx, p)
	})
}

func upsertPreset(ctx context.Context, tx *sql.Tx, p Preset) error {
	if err := mustExist(ctx, tx, "profiles", "profile", p.ProfileID); err != nil {
		return err
	}
	if err := mustExist(ctx, tx, "glass_types", "glass type", p.GlassID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO presets (code, location, name, profile_id, glass_id, rate_per_sqft,
		                     default_width, default_height, default_quantity, list_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			location = excluded.location,
			name = excluded.name,
			profile_id = excluded.profile_id,
			glass_id = excluded.glass_id,
			rate_per_sqft = excluded.rate_per_sqft,
			default_width = excluded.default_width,
			default_height = excluded.default_height,
			default_quantity = excluded.default_quantity,
			list_price = excluded.list_price
	`, p.Code, p.Location, p.Name, p.ProfileID, p.GlassID, p.RatePerSqFt,
		p.DefaultWidth, p.DefaultHeight, p.DefaultQuantity, p.ListPrice); err != nil {
		return fmt.Errorf("upsert preset %s: %w", p.Code, err)
	}
	return nil
}

// mustExist reports a missing catalog record for id in table.
func mustExist(ctx context.Context, tx *sql.Tx, table, kind, id string) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id = ? LIMIT 1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s existence: %w", kind, err)
	}
	if !exists {
		return pricing.MissingRecord(kind, id)
	}
	return nil
}

func validateCharges(c pricing.Charges) error {
	return checkRates(map[string]float64{
		"transportation":        c.Transportation,
		"loadingUnloading":      c.LoadingUnloading,
		"installationPerWindow": c.InstallationPerWindow,
	})
}

// UpdateCharges replaces the logistics and installation charges.
func (s *Store) UpdateCharges(ctx context.Context, c pricing.Charges) error {
	if err := validateCharges(c); err != nil {
		return err
	}
	return s.write(ctx, "charges update", func(tx *sql.Tx) error {
		return updateCharges(ctx, tx, c)
	})
}

func updateCharges(ctx context.Context, tx *sql.Tx, c pricing.Charges) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE catalog_settings
		SET transportation = ?, loading_unloading = ?, installation_per_window = ?
		WHERE id = 1
	`, c.Transportation, c.LoadingUnloading, c.InstallationPerWindow); err != nil {
		return fmt.Errorf("update charges: %w", err)
	}
	return nil
}

func validateAccessories(a pricing.AccessoryPricing) error {
	return checkRates(map[string]float64{
		"pleatedMesh":      a.PleatedMesh,
		"premiumFinishing": a.PremiumFinishing,
		"installation":     a.Installation,
	})
}

// UpdateAccessories replaces the per-window accessory prices.
func (s *Store) UpdateAccessories(ctx context.Context, a pricing.AccessoryPricing) error {
	if err := validateAccessories(a); err != nil {
		return err
	}
	return s.write(ctx, "accessories update", func(tx *sql.Tx) error {
		return updateAccessories(ctx, tx, a)
	})
}

func updateAccessories(ctx context.Context, tx *sql.Tx, a pricing.AccessoryPricing) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE catalog_settings
		SET pleated_mesh = ?, premium_finishing = ?, accessory_installation = ?
		WHERE id = 1
	`, a.PleatedMesh, a.PremiumFinishing, a.Installation); err != nil {
		return fmt.Errorf("update accessories: %w", err)
	}
	return nil
}

func validateSettings(st Settings) error {
	d := st.Dimensions
	if err := checkRates(map[string]float64{
		"gstRate":   st.GSTRate,
		"minWidth":  d.MinWidth,
		"maxWidth":  d.MaxWidth,
		"minHeight": d.MinHeight,
		"maxHeight": d.MaxHeight,
	}); err != nil {
		return err
	}
	if (d.MaxWidth > 0 && d.MinWidth > d.MaxWidth) || (d.MaxHeight > 0 && d.MinHeight > d.MaxHeight) {
		msg := "minimum dimensions must not exceed maximum dimensions"
		return apperror.Validation(msg, fmt.Errorf("%w: %s", pricing.ErrInvalidDimension, msg))
	}
	return nil
}

// UpdateSettings replaces the GST rate, currency and dimension bounds.
func (s *Store) UpdateSettings(ctx context.Context, st Settings) error {
	if err := validateSettings(st); err != nil {
		return err
	}
	if strings.TrimSpace(st.Currency) == "" {
		st.Currency = "INR"
	}
	return s.write(ctx, "settings update", func(tx *sql.Tx) error {
		return updateSettings(ctx, tx, st)
	})
}

func updateSettings(ctx context.Context, tx *sql.Tx, st Settings) error {
	d := st.Dimensions
	if _, err := tx.ExecContext(ctx, `
		UPDATE catalog_settings
		SET gst_rate = ?, currency = ?, min_width = ?, max_width = ?, min_height = ?, max_height = ?
		WHERE id = 1
	`, st.GSTRate, st.Currency, d.MinWidth, d.MaxWidth, d.MinHeight, d.MaxHeight); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// UpdateCompany replaces the company details printed on quotations.
func (s *Store) UpdateCompany(ctx context.Context, c Company) error {
	if err := required("company name", c.Name); err != nil {
		return err
	}
	return s.write(ctx, "company update", func(tx *sql.Tx) error {
		return updateCompany(ctx, tx, c)
	})
}

func updateCompany(ctx context.Context, tx *sql.Tx, c Company) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE catalog_settings
		SET company_name = ?, company_address = ?, company_phone = ?,
		    company_email = ?, company_website = ?, company_gstin = ?
		WHERE id = 1
	`, c.Name, c.Address, c.Phone, c.Email, c.Website, c.GSTIN); err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// checkRates validates amounts in a stable field order.
func checkRates(fields map[string]float64) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := pricing.CheckRate(name, fields[name]); err != nil {
			return err
		}
	}
	return nil
}
