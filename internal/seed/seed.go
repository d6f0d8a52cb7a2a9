// Package seed loads the default catalog into an empty database.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/windowquote/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way. Records that already
// exist are left untouched so catalog edits survive restarts.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	steps := []func(context.Context, *sql.Tx, *Stats) error{
		ensureSettings,
		ensureProfiles,
		ensureGlass,
		ensurePresets,
	}
	for _, step := range steps {
		if err := step(ctx, tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func exists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	var ok bool
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM catalog_settings WHERE id = 1)`)
	if err != nil {
		return fmt.Errorf("check catalog settings existence: %w", err)
	}
	if found {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_settings (
			id,
			version,
			transportation,
			loading_unloading,
			installation_per_window,
			pleated_mesh,
			premium_finishing,
			gst_rate,
			currency,
			min_width,
			max_width,
			min_height,
			max_height,
			company_name,
			company_address,
			company_phone,
			company_email,
			company_gstin
		)
		VALUES (1, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		defaultCharges.Transportation, defaultCharges.LoadingUnloading, defaultCharges.InstallationPerWindow,
		defaultAccessories.PleatedMesh, defaultAccessories.PremiumFinishing,
		defaultGSTRate, defaultCurrency,
		minDimensionMM, maxDimensionMM, minDimensionMM, maxDimensionMM,
		defaultCompany.Name, defaultCompany.Address, defaultCompany.Phone, defaultCompany.Email, defaultCompany.GSTIN,
	); err != nil {
		return fmt.Errorf("insert catalog settings singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureProfiles(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, p := range defaultProfiles {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ? LIMIT 1)`, p.ID)
		if err != nil {
			return fmt.Errorf("check profile %s existence: %w", p.ID, err)
		}
		if found {
			continue
		}

		types, _ := json.Marshal(p.WindowTypes)
		accessories, _ := json.Marshal(p.Accessories)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (id, name, description, frame_size, window_types, accessories,
			                      weight_per_meter, base_price, supports_pleated_mesh)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Description, p.FrameSize, string(types), string(accessories),
			p.WeightPerMeter, p.BasePrice, p.SupportsPleatedMesh); err != nil {
			return fmt.Errorf("insert profile %s: %w", p.ID, err)
		}

		tiers := []struct {
			name pricing.TierName
			tier pricing.Tier
		}{
			{pricing.TierVerySmall, p.ScaledPricing.VerySmall},
			{pricing.TierSmall, p.ScaledPricing.Small},
			{pricing.TierMedium, p.ScaledPricing.Medium},
			{pricing.TierLarge, p.ScaledPricing.Large},
			{pricing.TierExtraLarge, p.ScaledPricing.ExtraLarge},
		}
		for i, t := range tiers {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO profile_tiers (profile_id, tier, position, threshold, price_per_sqft)
				VALUES (?, ?, ?, ?, ?)
			`, p.ID, string(t.name), i+1, t.tier.Threshold, t.tier.PricePerSqFt); err != nil {
				return fmt.Errorf("insert %s tier of %s: %w", t.name, p.ID, err)
			}
		}
		stats.Inserts++
	}
	return nil
}

func ensureGlass(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, g := range defaultGlass {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM glass_types WHERE id = ? LIMIT 1)`, g.ID)
		if err != nil {
			return fmt.Errorf("check glass type %s existence: %w", g.ID, err)
		}
		if found {
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO glass_types (id, name, surcharge, weight_per_sqft)
			VALUES (?, ?, ?, ?)
		`, g.ID, g.Name, g.Surcharge, g.WeightPerSqFt); err != nil {
			return fmt.Errorf("insert glass type %s: %w", g.ID, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensurePresets(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, p := range defaultPresets {
		found, err := exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM presets WHERE code = ? LIMIT 1)`, p.code)
		if err != nil {
			return fmt.Errorf("check preset %s existence: %w", p.code, err)
		}
		if found {
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO presets (code, location, name, profile_id, glass_id, rate_per_sqft,
			                     default_width, default_height, default_quantity, list_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.code, p.location, p.name, p.profileID, p.glassID, p.rate,
			p.width, p.height, p.quantity, p.listPrice); err != nil {
			return fmt.Errorf("insert preset %s: %w", p.code, err)
		}
		stats.Inserts++
	}
	return nil
}
