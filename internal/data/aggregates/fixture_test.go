package aggregates

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/repos"
	"github.com/yungbote/forcebook-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/keylock"
)

type rebelFixture struct {
	db      *gorm.DB
	hooks   *spyHooks
	rebels  repos.RebelRepo
	items   repos.ItemRepo
	reports repos.TreasonReportRepo
	records repos.NegotiationRecordRepo

	negotiation *negotiationAggregate
	treason     domainagg.TreasonAggregate
	registry    domainagg.RegistryAggregate
}

func newRebelFixture(t *testing.T) *rebelFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	hooks := &spyHooks{}
	base := BaseDeps{DB: db, Log: log, Hooks: hooks, Locks: keylock.New()}

	f := &rebelFixture{
		db:      db,
		hooks:   hooks,
		rebels:  repos.NewRebelRepo(db, log),
		items:   repos.NewItemRepo(db, log),
		reports: repos.NewTreasonReportRepo(db, log),
		records: repos.NewNegotiationRecordRepo(db, log),
	}
	f.negotiation = NewNegotiationAggregate(NegotiationAggregateDeps{
		Base:      base,
		Rebels:    f.rebels,
		Items:     f.items,
		Templates: repos.NewItemTemplateRepo(db, log),
		Reports:   f.reports,
		Records:   f.records,
	}).(*negotiationAggregate)
	f.treason = NewTreasonAggregate(TreasonAggregateDeps{
		Base:    base,
		Rebels:  f.rebels,
		Reports: f.reports,
	})
	f.registry = NewRegistryAggregate(RegistryAggregateDeps{
		Base:      base,
		Rebels:    f.rebels,
		Items:     f.items,
		Templates: repos.NewItemTemplateRepo(db, log),
	})

	testutil.SeedTemplates(t, context.Background(), db, nil)
	return f
}

func (f *rebelFixture) rebel(t *testing.T, name string, holdings map[string]int) {
	t.Helper()
	testutil.SeedRebel(t, context.Background(), f.db, name, holdings)
}

func (f *rebelFixture) holdings(t *testing.T, name string) map[string]int {
	t.Helper()
	rows, err := f.items.ListByOwner(dbctx.Context{Ctx: context.Background()}, name)
	if err != nil {
		t.Fatalf("ListByOwner(%s): %v", name, err)
	}
	out := map[string]int{}
	for _, r := range rows {
		out[r.TemplateName] = r.Quantity
	}
	return out
}

func (f *rebelFixture) version(t *testing.T, name string) int {
	t.Helper()
	r, err := f.rebels.GetByName(dbctx.Context{Ctx: context.Background()}, name)
	if err != nil || r == nil {
		t.Fatalf("GetByName(%s): rebel=%v err=%v", name, r, err)
	}
	return r.Version
}

func leg(rebel string, kv ...any) domainagg.TradeLeg {
	out := domainagg.TradeLeg{Rebel: rebel}
	for i := 0; i+1 < len(kv); i += 2 {
		out.Items = append(out.Items, domainagg.TradeItem{Name: kv[i].(string), Quantity: kv[i+1].(int)})
	}
	return out
}

func sameHoldings(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
