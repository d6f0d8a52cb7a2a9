package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"github.com/Simplici0/windowquote/internal/cache"
	"github.com/Simplici0/windowquote/internal/config"
	"github.com/Simplici0/windowquote/internal/logger"
	"github.com/Simplici0/windowquote/internal/pricing"
)

func newCached(t *testing.T) (*Cached, *Store, *miniredis.Miniredis) {
	t.Helper()
	store := newSeededStore(t)
	mr := miniredis.RunT(t)

	client, err := cache.Connect(context.Background(), &config.RedisConfig{Addr: mr.Addr()}, logger.Discard())
	if err != nil {
		t.Fatalf("connect cache: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return NewCached(store, client, time.Minute, logger.Discard()), store, mr
}

func TestCached_ServesSnapshotFromRedis(t *testing.T) {
	cached, store, mr := newCached(t)
	ctx := context.Background()

	first, err := cached.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if !mr.Exists("catalog:1") {
		t.Fatalf("snapshot was not cached under catalog:1, keys=%v", mr.Keys())
	}

	// A change that skips the version bump stays invisible while cached.
	if _, err := store.db.Exec(`UPDATE glass_types SET surcharge = 999 WHERE id = 'frosted-5mm'`); err != nil {
		t.Fatalf("direct update: %v", err)
	}

	second, err := cached.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	g1, _ := first.GlassType("frosted-5mm")
	g2, _ := second.GlassType("frosted-5mm")
	if g1.Surcharge != 100 || g2.Surcharge != 100 {
		t.Fatalf("expected cached surcharge 100, got %v then %v", g1.Surcharge, g2.Surcharge)
	}
}

func TestCached_WritesInvalidate(t *testing.T) {
	cached, _, mr := newCached(t)
	ctx := context.Background()

	if _, err := cached.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err := cached.UpdateSettings(ctx, Settings{GSTRate: 12, Currency: "INR"}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if mr.Exists("catalog:1") {
		t.Fatalf("stale snapshot still cached")
	}

	snap, err := cached.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Version != 2 || snap.Settings.GSTRate != 12 {
		t.Fatalf("snapshot after write: version=%d gst=%v", snap.Version, snap.Settings.GSTRate)
	}
	if !mr.Exists("catalog:2") {
		t.Fatalf("new snapshot not cached")
	}
}

func TestCached_FailedWriteKeepsCache(t *testing.T) {
	cached, _, mr := newCached(t)
	ctx := context.Background()

	if _, err := cached.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	err := cached.UpdateCharges(ctx, pricing.Charges{Transportation: -5})
	if !errors.Is(err, pricing.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if !mr.Exists("catalog:1") {
		t.Fatalf("cache dropped after a rejected write")
	}
}

func TestCached_RedisDownFallsBackToStore(t *testing.T) {
	cached, _, mr := newCached(t)
	mr.Close()

	snap, err := cached.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot with redis down: %v", err)
	}
	if len(snap.Presets) != 40 {
		t.Fatalf("expected store snapshot, got %d presets", len(snap.Presets))
	}
	if err := cached.UpdateCompany(context.Background(), Company{Name: "Mega Profile Pvt Ltd"}); err != nil {
		t.Fatalf("write with redis down: %v", err)
	}
}
