package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/windowquote/internal/db"
	"github.com/Simplici0/windowquote/internal/migrations"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := openMigrated(t)
	ctx := context.Background()

	want := 1 + len(defaultProfiles) + len(defaultGlass) + len(defaultPresets)
	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != want {
				t.Fatalf("expected %d inserts in first run, got %d", want, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM catalog_settings WHERE id = 1 AND gst_rate = 18`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM profiles`, 2)
	assertCount(t, database, `SELECT COUNT(*) FROM profile_tiers`, 10)
	assertCount(t, database, `SELECT COUNT(*) FROM glass_types`, len(defaultGlass))
	assertCount(t, database, `SELECT COUNT(*) FROM presets`, 40)
	assertCount(t, database, `SELECT COUNT(*) FROM presets WHERE code = 'W24'`, 0)
	assertCount(t, database, `SELECT COUNT(*) FROM profiles WHERE id = 'MC45' AND supports_pleated_mesh = 1`, 1)
}

func TestRunKeepsEditedRecords(t *testing.T) {
	database := openMigrated(t)
	ctx := context.Background()

	if _, err := Run(ctx, database); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if _, err := database.Exec(`UPDATE catalog_settings SET gst_rate = 12 WHERE id = 1`); err != nil {
		t.Fatalf("edit settings: %v", err)
	}
	if _, err := database.Exec(`UPDATE glass_types SET surcharge = 120 WHERE id = 'frosted-5mm'`); err != nil {
		t.Fatalf("edit glass: %v", err)
	}

	if _, err := Run(ctx, database); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM catalog_settings WHERE gst_rate = 12`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM glass_types WHERE id = 'frosted-5mm' AND surcharge = 120`, 1)
}

func TestDefaultPresetsReferenceSeededRecords(t *testing.T) {
	profiles := map[string]bool{}
	for _, p := range defaultProfiles {
		profiles[p.ID] = true
	}
	glass := map[string]bool{}
	for _, g := range defaultGlass {
		glass[g.ID] = true
	}

	seen := map[string]bool{}
	for _, p := range defaultPresets {
		if seen[p.code] {
			t.Fatalf("preset %s listed twice", p.code)
		}
		seen[p.code] = true
		if !profiles[p.profileID] {
			t.Errorf("preset %s uses unknown profile %s", p.code, p.profileID)
		}
		if !glass[p.glassID] {
			t.Errorf("preset %s uses unknown glass %s", p.code, p.glassID)
		}
		if p.rate <= 0 || p.width <= 0 || p.height <= 0 || p.quantity <= 0 || p.listPrice <= 0 {
			t.Errorf("preset %s has a non-positive figure: %+v", p.code, p)
		}
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("%s: expected count %d, got %d", query, expected, count)
	}
}
