package aggregates

import (
	"context"
	"math"
	"testing"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
)

func registration(name string, items ...domainagg.TradeItem) domainagg.RegisterInput {
	return domainagg.RegisterInput{
		Name:      name,
		Age:       23,
		Gender:    types.GenderMale,
		Location:  types.Location{Name: "Tatooine", Latitude: 1.5, Longitude: -2},
		Inventory: items,
	}
}

func TestRegisterMergesStartingInventory(t *testing.T) {
	f := newRebelFixture(t)
	res, err := f.registry.Register(context.Background(), registration("Luke",
		domainagg.TradeItem{Name: "Weapon", Quantity: 2},
		domainagg.TradeItem{Name: "Food", Quantity: 0},
		domainagg.TradeItem{Name: "Weapon", Quantity: 3},
	))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(res.Inventory) != 1 || res.Inventory[0].Quantity != 5 {
		t.Fatalf("merged inventory: %+v", res.Inventory)
	}
	if got := f.holdings(t, "Luke"); !sameHoldings(got, map[string]int{"Weapon": 5}) {
		t.Fatalf("stored holdings: %v", got)
	}
	row, err := f.rebels.GetByName(dbctx.Of(context.Background()), "Luke")
	if err != nil || row == nil {
		t.Fatalf("GetByName: row=%v err=%v", row, err)
	}
	if row.Location.Name != "Tatooine" || row.Gender != types.GenderMale || row.Version != 0 {
		t.Fatalf("stored rebel: %+v", row)
	}
}

func TestRegisterRejections(t *testing.T) {
	f := newRebelFixture(t)
	f.rebel(t, "Han", map[string]int{"Ammo": 1})

	negative := registration("Lando", domainagg.TradeItem{Name: "Food", Quantity: -1})
	badGender := registration("Lando")
	badGender.Gender = types.Gender(9)
	noBase := registration("Lando")
	noBase.Location.Name = "  "
	tooYoung := registration("Lando")
	tooYoung.Age = -1
	overflow := registration("Lando",
		domainagg.TradeItem{Name: "Weapon", Quantity: math.MaxInt},
		domainagg.TradeItem{Name: "Weapon", Quantity: math.MaxInt},
	)

	cases := []struct {
		name string
		in   domainagg.RegisterInput
		code domainagg.ErrorCode
		kind barter.Kind
	}{
		{"blank name", registration("  "), domainagg.CodeValidation, ""},
		{"negative age", tooYoung, domainagg.CodeValidation, ""},
		{"unknown gender", badGender, domainagg.CodeValidation, ""},
		{"missing location", noBase, domainagg.CodeValidation, ""},
		{"negative quantity", negative, domainagg.CodeValidation, barter.KindInvalidQuantity},
		{"overflowing quantity", overflow, domainagg.CodeValidation, barter.KindInvalidQuantity},
		{"duplicate", registration("Han"), domainagg.CodeConflict, barter.KindDuplicateRebel},
		{"unknown item", registration("Lando", domainagg.TradeItem{Name: "Lightsaber", Quantity: 1}), domainagg.CodeNotFound, barter.KindUnknownItemType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.registry.Register(context.Background(), tc.in)
			if !domainagg.IsCode(err, tc.code) {
				t.Fatalf("code: want=%s got=%v", tc.code, err)
			}
			if tc.kind != "" && !barter.IsKind(err, tc.kind) {
				t.Fatalf("kind: want=%s got=%v", tc.kind, err)
			}
		})
	}

	ok, err := f.rebels.Exists(dbctx.Of(context.Background()), "Lando")
	if err != nil || ok {
		t.Fatalf("rejected registrations must not persist: exists=%v err=%v", ok, err)
	}
	if got := f.holdings(t, "Han"); !sameHoldings(got, map[string]int{"Ammo": 1}) {
		t.Fatalf("duplicate registration touched holdings: %v", got)
	}
}

func TestUpdateLocation(t *testing.T) {
	f := newRebelFixture(t)
	f.rebel(t, "Leia", nil)

	res, err := f.registry.UpdateLocation(context.Background(), domainagg.UpdateLocationInput{
		Name:     "Leia",
		Location: types.Location{Name: " Yavin IV ", Latitude: 10, Longitude: 20},
	})
	if err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	if res.Location.Name != "Yavin IV" {
		t.Fatalf("location name not trimmed: %q", res.Location.Name)
	}
	if v := f.version(t, "Leia"); v != 0 {
		t.Fatalf("relocation must not bump version: got=%d", v)
	}

	_, err = f.registry.UpdateLocation(context.Background(), domainagg.UpdateLocationInput{
		Name:     "Yoda",
		Location: types.Location{Name: "Dagobah"},
	})
	if !barter.IsKind(err, barter.KindUnknownActor) || !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("unknown rebel: %v", err)
	}
}
