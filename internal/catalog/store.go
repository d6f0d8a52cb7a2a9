package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/windowquote/internal/pricing"
)

// Store is the SQLite implementation of Catalog.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type tierRow struct {
	name     pricing.TierName
	position int
	tier     pricing.Tier
}

func tierRows(sp pricing.ScaledPricing) []tierRow {
	return []tierRow{
		{pricing.TierVerySmall, 1, sp.VerySmall},
		{pricing.TierSmall, 2, sp.Small},
		{pricing.TierMedium, 3, sp.Medium},
		{pricing.TierLarge, 4, sp.Large},
		{pricing.TierExtraLarge, 5, sp.ExtraLarge},
	}
}

func tierSlot(sp *pricing.ScaledPricing, name pricing.TierName) *pricing.Tier {
	switch name {
	case pricing.TierVerySmall:
		return &sp.VerySmall
	case pricing.TierSmall:
		return &sp.Small
	case pricing.TierMedium:
		return &sp.Medium
	case pricing.TierLarge:
		return &sp.Large
	case pricing.TierExtraLarge:
		return &sp.ExtraLarge
	}
	return nil
}

// Snapshot reads the whole catalog inside one transaction.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin catalog snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	snap := &Snapshot{}
	if err := readSettings(ctx, tx, snap); err != nil {
		return nil, err
	}
	if snap.Profiles, err = readProfiles(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Glass, err = readGlass(ctx, tx); err != nil {
		return nil, err
	}
	if snap.Presets, err = queryPresets(ctx, tx, PresetFilter{}); err != nil {
		return nil, err
	}
	return snap, nil
}

// Version returns the current catalog version without reading the records.
func (s *Store) Version(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT version FROM catalog_settings WHERE id = 1`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read catalog version: %w", err)
	}
	return v, nil
}

func readSettings(ctx context.Context, q querier, snap *Snapshot) error {
	err := q.QueryRowContext(ctx, `
		SELECT
			version,
			transportation, loading_unloading, installation_per_window,
			pleated_mesh, premium_finishing, accessory_installation,
			gst_rate, currency,
			min_width, max_width, min_height, max_height,
			company_name, company_address, company_phone, company_email, company_website, company_gstin
		FROM catalog_settings
		WHERE id = 1
	`).Scan(
		&snap.Version,
		&snap.Charges.Transportation, &snap.Charges.LoadingUnloading, &snap.Charges.InstallationPerWindow,
		&snap.Accessories.PleatedMesh, &snap.Accessories.PremiumFinishing, &snap.Accessories.Installation,
		&snap.Settings.GSTRate, &snap.Settings.Currency,
		&snap.Settings.Dimensions.MinWidth, &snap.Settings.Dimensions.MaxWidth,
		&snap.Settings.Dimensions.MinHeight, &snap.Settings.Dimensions.MaxHeight,
		&snap.Company.Name, &snap.Company.Address, &snap.Company.Phone,
		&snap.Company.Email, &snap.Company.Website, &snap.Company.GSTIN,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read catalog settings: %w", err)
	}
	return nil
}

func readProfiles(ctx context.Context, q querier) ([]pricing.ProfileSystem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, description, frame_size, window_types, accessories,
		       weight_per_meter, base_price, supports_pleated_mesh
		FROM profiles
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []pricing.ProfileSystem
	index := map[string]int{}
	for rows.Next() {
		var (
			p                  pricing.ProfileSystem
			types, accessories string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.FrameSize, &types, &accessories,
			&p.WeightPerMeter, &p.BasePrice, &p.SupportsPleatedMesh); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := decodeList(types, &p.WindowTypes); err != nil {
			return nil, fmt.Errorf("decode window types of %s: %w", p.ID, err)
		}
		if err := decodeList(accessories, &p.Accessories); err != nil {
			return nil, fmt.Errorf("decode accessories of %s: %w", p.ID, err)
		}
		index[p.ID] = len(profiles)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	tiers, err := q.QueryContext(ctx, `SELECT profile_id, tier, threshold, price_per_sqft FROM profile_tiers ORDER BY profile_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query profile tiers: %w", err)
	}
	defer tiers.Close()

	for tiers.Next() {
		var (
			profileID, name string
			t               pricing.Tier
		)
		if err := tiers.Scan(&profileID, &name, &t.Threshold, &t.PricePerSqFt); err != nil {
			return nil, fmt.Errorf("scan profile tier: %w", err)
		}
		i, ok := index[profileID]
		if !ok {
			continue
		}
		if slot := tierSlot(&profiles[i].ScaledPricing, pricing.TierName(name)); slot != nil {
			*slot = t
		}
	}
	if err := tiers.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile tiers: %w", err)
	}

	return profiles, nil
}

func readGlass(ctx context.Context, q querier) ([]pricing.GlassType, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, surcharge, weight_per_sqft, scale_multiplier FROM glass_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query glass types: %w", err)
	}
	defer rows.Close()

	var glass []pricing.GlassType
	for rows.Next() {
		var (
			g   pricing.GlassType
			mul sql.NullFloat64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Surcharge, &g.WeightPerSqFt, &mul); err != nil {
			return nil, fmt.Errorf("scan glass type: %w", err)
		}
		if mul.Valid {
			v := mul.Float64
			g.ScaleMultiplier = &v
		}
		glass = append(glass, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glass types: %w", err)
	}
	return glass, nil
}

// SearchPresets lists presets matching f, ordered by code.
func (s *Store) SearchPresets(ctx context.Context, f PresetFilter) ([]Preset, error) {
	return queryPresets(ctx, s.db, f)
}

func queryPresets(ctx context.Context, q querier, f PresetFilter) ([]Preset, error) {
	query := strings.TrimSpace(f.Query)
	location := normalizeFilter(f.Location)
	profile := normalizeFilter(f.ProfileID)
	like := "%" + query + "%"

	rows, err := q.QueryContext(ctx, `
		SELECT code, location, name, profile_id, glass_id, rate_per_sqft,
		       default_width, default_height, default_quantity, list_price
		FROM presets
		WHERE (? = '' OR code LIKE ? OR location LIKE ? OR name LIKE ?)
		  AND (? = '' OR location = ?)
		  AND (? = '' OR profile_id = ?)
		ORDER BY code
	`, query, like, like, like, location, location, profile, profile)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := []Preset{}
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.Code, &p.Location, &p.Name, &p.ProfileID, &p.GlassID, &p.RatePerSqFt,
			&p.DefaultWidth, &p.DefaultHeight, &p.DefaultQuantity, &p.ListPrice); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}
	return presets, nil
}

// normalizeFilter treats "All" like an empty filter.
func normalizeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func decodeList(raw string, dst *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func encodeList(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
