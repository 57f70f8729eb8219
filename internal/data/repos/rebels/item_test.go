package rebels

import (
	"context"
	"testing"

	"github.com/yungbote/forcebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
)

func TestItemRepoDebitCredit(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewItemRepo(db, testutil.Logger(t))

	testutil.SeedTemplates(t, ctx, db, nil)
	testutil.SeedRebel(t, ctx, db, "Han Solo", map[string]int{"Ammo": 3})

	ok, err := repo.Debit(dbc, "Han Solo", "Ammo", 4)
	if err != nil || ok {
		t.Fatalf("Debit over stock: ok=%v err=%v", ok, err)
	}
	if q, _ := repo.Quantity(dbc, "Han Solo", "Ammo"); q != 3 {
		t.Fatalf("rejected debit must not write: qty=%d", q)
	}

	if ok, err := repo.Debit(dbc, "Han Solo", "Ammo", 1); err != nil || !ok {
		t.Fatalf("Debit: ok=%v err=%v", ok, err)
	}
	if q, _ := repo.Quantity(dbc, "Han Solo", "Ammo"); q != 2 {
		t.Fatalf("after debit: qty=%d", q)
	}
	if ok, err := repo.Debit(dbc, "Han Solo", "Ammo", 2); err != nil || !ok {
		t.Fatalf("Debit to zero: ok=%v err=%v", ok, err)
	}
	rows, err := repo.ListByOwner(dbc, "Han Solo")
	if err != nil || len(rows) != 0 {
		t.Fatalf("holding at zero must be removed: rows=%v err=%v", rows, err)
	}
	if ok, err := repo.Debit(dbc, "Han Solo", "Ammo", 1); err != nil || ok {
		t.Fatalf("Debit missing holding: ok=%v err=%v", ok, err)
	}

	if err := repo.Credit(dbc, "Han Solo", "Water", 2); err != nil {
		t.Fatalf("Credit new: %v", err)
	}
	if err := repo.Credit(dbc, "Han Solo", "Water", 3); err != nil {
		t.Fatalf("Credit existing: %v", err)
	}
	if q, _ := repo.Quantity(dbc, "Han Solo", "Water"); q != 5 {
		t.Fatalf("after credits: qty=%d", q)
	}
	if err := repo.Credit(dbc, "Han Solo", "Food", 0); err != nil {
		t.Fatalf("Credit zero: %v", err)
	}
	if q, _ := repo.Quantity(dbc, "Han Solo", "Food"); q != 0 {
		t.Fatalf("zero credit must not create a row: qty=%d", q)
	}
}

func TestItemRepoAggregates(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewItemRepo(db, testutil.Logger(t))

	testutil.SeedTemplates(t, ctx, db, nil)
	testutil.SeedRebel(t, ctx, db, "Luke", map[string]int{"Weapon": 2, "Food": 4})
	testutil.SeedRebel(t, ctx, db, "Leia", map[string]int{"Weapon": 1})
	testutil.SeedRebel(t, ctx, db, "Boba", map[string]int{"Weapon": 5, "Ammo": 1})

	sums, err := repo.SumByTemplateExcluding(dbc, []string{"Boba"})
	if err != nil {
		t.Fatalf("SumByTemplateExcluding: %v", err)
	}
	if sums["Weapon"] != 3 || sums["Food"] != 4 || sums["Ammo"] != 0 {
		t.Fatalf("unexpected sums: %v", sums)
	}
	all, err := repo.SumByTemplateExcluding(dbc, nil)
	if err != nil || all["Weapon"] != 8 {
		t.Fatalf("SumByTemplateExcluding(nil): sums=%v err=%v", all, err)
	}

	pts, err := repo.PointsHeldBy(dbc, []string{"Boba"})
	if err != nil || pts != 23 {
		t.Fatalf("PointsHeldBy: pts=%d err=%v", pts, err)
	}
	if pts, err := repo.PointsHeldBy(dbc, nil); err != nil || pts != 0 {
		t.Fatalf("PointsHeldBy(nil): pts=%d err=%v", pts, err)
	}
}

func TestItemTemplateRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewItemTemplateRepo(db, testutil.Logger(t))

	if err := repo.Upsert(dbc, []*types.ItemTemplate{{Name: "Food", Points: 1}, {Name: "Weapon", Points: 3}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, []*types.ItemTemplate{{Name: "Weapon", Points: 4}}); err != nil {
		t.Fatalf("Upsert refresh: %v", err)
	}
	rows, err := repo.List(dbc)
	if err != nil || len(rows) != 2 {
		t.Fatalf("List: len=%d err=%v", len(rows), err)
	}
	if rows[0].Name != "Weapon" || rows[0].Points != 4 {
		t.Fatalf("expected Weapon first with 4 points: %+v", rows[0])
	}
	got, err := repo.GetByNames(dbc, []string{"Food", "Blaster"})
	if err != nil || len(got) != 1 || got[0].Name != "Food" {
		t.Fatalf("GetByNames: rows=%v err=%v", got, err)
	}
}
