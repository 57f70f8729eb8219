package services

import (
	"context"
	"sync"
	"testing"

	"github.com/yungbote/forcebook-backend/internal/data/aggregates"
	"github.com/yungbote/forcebook-backend/internal/data/repos"
	"github.com/yungbote/forcebook-backend/internal/data/repos/testutil"
	"github.com/yungbote/forcebook-backend/internal/platform/keylock"
	"github.com/yungbote/forcebook-backend/internal/realtime"
	"gorm.io/gorm"
)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	e.msgs = append(e.msgs, msg)
	e.mu.Unlock()
}

func (e *recordingEmitter) events() []realtime.SSEEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]realtime.SSEEvent, 0, len(e.msgs))
	for _, m := range e.msgs {
		out = append(out, m.Event)
	}
	return out
}

type serviceFixture struct {
	db      *gorm.DB
	events  *recordingEmitter
	rebels  RebelService
	reports ReportService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	base := aggregates.BaseDeps{DB: db, Log: log, Locks: keylock.New()}

	rebelRepo := repos.NewRebelRepo(db, log)
	itemRepo := repos.NewItemRepo(db, log)
	templateRepo := repos.NewItemTemplateRepo(db, log)
	reportRepo := repos.NewTreasonReportRepo(db, log)
	recordRepo := repos.NewNegotiationRecordRepo(db, log)

	events := &recordingEmitter{}
	f := &serviceFixture{db: db, events: events}
	f.rebels = NewRebelService(log, RebelServiceDeps{
		Rebels:    rebelRepo,
		Templates: templateRepo,
		Reports:   reportRepo,
		Records:   recordRepo,
		Registry: aggregates.NewRegistryAggregate(aggregates.RegistryAggregateDeps{
			Base: base, Rebels: rebelRepo, Items: itemRepo, Templates: templateRepo,
		}),
		Negotiation: aggregates.NewNegotiationAggregate(aggregates.NegotiationAggregateDeps{
			Base: base, Rebels: rebelRepo, Items: itemRepo, Templates: templateRepo, Reports: reportRepo, Records: recordRepo,
		}),
		Treason: aggregates.NewTreasonAggregate(aggregates.TreasonAggregateDeps{
			Base: base, Rebels: rebelRepo, Reports: reportRepo,
		}),
		Notifier: NewRebelNotifier(events),
	})
	f.reports = NewReportService(log, rebelRepo, itemRepo, templateRepo, reportRepo)

	testutil.SeedTemplates(t, context.Background(), db, nil)
	return f
}

func (f *serviceFixture) rebel(t *testing.T, name string, holdings map[string]int) {
	t.Helper()
	testutil.SeedRebel(t, context.Background(), f.db, name, holdings)
}

func (f *serviceFixture) report(t *testing.T, accuser, accused string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		if _, err := f.rebels.ReportTreason(context.Background(), ReportTreasonRequest{Accuser: accuser, Accused: accused}); err != nil {
			t.Fatalf("ReportTreason(%s -> %s): %v", accuser, accused, err)
		}
	}
}

func inventoryOf(items []ItemView) map[string]int {
	out := map[string]int{}
	for _, it := range items {
		out[it.Name] = it.Quantity
	}
	return out
}
