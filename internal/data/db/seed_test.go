package db

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	svc, err := NewSQLiteService(logger.NewNop(), "file:"+uuid.NewString()+"?mode=memory", true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrateAll(svc.DB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return svc.DB()
}

func TestParseSeedDefault(t *testing.T) {
	data, err := ParseSeed(DefaultSeed())
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	if len(data.ItemTemplates) != 4 {
		t.Fatalf("templates: want=4 got=%d", len(data.ItemTemplates))
	}
	if len(data.Rebels) != 5 {
		t.Fatalf("rebels: want=5 got=%d", len(data.Rebels))
	}
	if len(data.TreasonReports) != 3 {
		t.Fatalf("reports: want=3 got=%d", len(data.TreasonReports))
	}
}

func TestParseSeedRejects(t *testing.T) {
	cases := map[string]string{
		"schema: negative points": `
item_templates:
  - { name: Weapon, points: -1 }
`,
		"unknown item": `
item_templates:
  - { name: Weapon, points: 4 }
rebels:
  - name: Han
    age: 30
    gender: male
    location: { name: Tatooine, latitude: 1, longitude: 2 }
    inventory:
      - { name: Blaster, quantity: 1 }
`,
		"unknown rebel in report": `
item_templates:
  - { name: Weapon, points: 4 }
treason_reports:
  - { accuser: Han, accused: Greedo }
`,
		"not yaml": "::: [",
	}
	for name, raw := range cases {
		if _, err := ParseSeed([]byte(raw)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := openTestDB(t)
	data, err := ParseSeed(DefaultSeed())
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Seed(ctx, gdb, logger.NewNop(), data); err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
	}

	var rebels int64
	if err := gdb.Model(&types.Rebel{}).Count(&rebels).Error; err != nil {
		t.Fatalf("count rebels: %v", err)
	}
	if rebels != 5 {
		t.Fatalf("rebels: want=5 got=%d", rebels)
	}

	var luke types.Item
	if err := gdb.Where("owner_name = ? AND template_name = ?", "Luke Skywalker", "Weapon").First(&luke).Error; err != nil {
		t.Fatalf("load holding: %v", err)
	}
	if luke.Quantity != 10 {
		t.Fatalf("seeding twice must not double holdings: got=%d", luke.Quantity)
	}

	var total int64
	if err := gdb.Model(&types.TreasonReport{}).
		Select("COALESCE(SUM(report_count), 0)").
		Where("accused_name = ?", "Boba Fett").
		Scan(&total).Error; err != nil {
		t.Fatalf("sum reports: %v", err)
	}
	if total != 3 {
		t.Fatalf("boba reports: want=3 got=%d", total)
	}
}

func TestSQLitePragmas(t *testing.T) {
	got := withSQLitePragmas("")
	if !strings.HasPrefix(got, "file:forcebook.db?") || !strings.Contains(got, "busy_timeout") {
		t.Fatalf("unexpected default dsn: %s", got)
	}
	if got := withSQLitePragmas("file:x.db?_pragma=foo(1)"); got != "file:x.db?_pragma=foo(1)" {
		t.Fatalf("explicit pragmas must be kept: %s", got)
	}
	if got := withSQLitePragmas("file:x.db?mode=memory"); !strings.Contains(got, "mode=memory&_pragma=") {
		t.Fatalf("expected & separator: %s", got)
	}
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: "5432", User: "rebel", Password: "p@ss", Name: "forcebook", SSLMode: "disable"}.DSN()
	if !strings.HasPrefix(dsn, "postgres://rebel:p%40ss@db:5432/forcebook") {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Fatalf("missing sslmode: %s", dsn)
	}
}
