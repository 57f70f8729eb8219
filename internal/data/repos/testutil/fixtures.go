package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
)

// StandardTemplates is the four-item catalog the rebels trade with.
var StandardTemplates = map[string]int{
	"Weapon": 4,
	"Ammo":   3,
	"Water":  2,
	"Food":   1,
}

func SeedTemplates(tb testing.TB, ctx context.Context, tx *gorm.DB, points map[string]int) {
	tb.Helper()
	if points == nil {
		points = StandardTemplates
	}
	rows := make([]*types.ItemTemplate, 0, len(points))
	for name, p := range points {
		rows = append(rows, &types.ItemTemplate{Name: name, Points: p})
	}
	if err := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		tb.Fatalf("seed templates: %v", err)
	}
}

// SeedRebel creates a rebel holding the given quantities.
func SeedRebel(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, holdings map[string]int) *types.Rebel {
	tb.Helper()
	now := time.Now().UTC()
	r := &types.Rebel{
		Name:      name,
		Age:       30,
		Gender:    types.GenderOther,
		Location:  types.Location{Name: "Hoth", Latitude: 1, Longitude: 2},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		tb.Fatalf("seed rebel %q: %v", name, err)
	}
	for item, qty := range holdings {
		if qty <= 0 {
			continue
		}
		row := &types.Item{OwnerName: name, TemplateName: item, Quantity: qty, CreatedAt: now, UpdatedAt: now}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed item %q for %q: %v", item, name, err)
		}
		r.Inventory = append(r.Inventory, *row)
	}
	return r
}

func SeedReport(tb testing.TB, ctx context.Context, tx *gorm.DB, accuser, accused string, count int) {
	tb.Helper()
	now := time.Now().UTC()
	row := &types.TreasonReport{AccuserName: accuser, AccusedName: accused, ReportCount: count, CreatedAt: now, UpdatedAt: now}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed report %q -> %q: %v", accuser, accused, err)
	}
}
