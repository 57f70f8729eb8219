package aggregates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/repos"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const (
	opNegotiate         = "rebels.negotiation.negotiate"
	opNegotiateEvaluate = "rebels.negotiation.evaluate"
)

type NegotiationAggregateDeps struct {
	Base      BaseDeps
	Rebels    repos.RebelRepo
	Items     repos.ItemRepo
	Templates repos.ItemTemplateRepo
	Reports   repos.TreasonReportRepo
	Records   repos.NegotiationRecordRepo
}

type negotiationAggregate struct {
	deps NegotiationAggregateDeps
	log  *logger.Logger
}

func NewNegotiationAggregate(deps NegotiationAggregateDeps) domainagg.NegotiationAggregate {
	deps.Base = deps.Base.withDefaults()
	return &negotiationAggregate{
		deps: deps,
		log:  deps.Base.Log.With("aggregate", "NegotiationAggregate"),
	}
}

func (a *negotiationAggregate) Contract() domainagg.Contract {
	return domainagg.NegotiationAggregateContract
}

func (a *negotiationAggregate) Negotiate(ctx context.Context, in domainagg.NegotiateInput) (domainagg.NegotiateResult, error) {
	start := time.Now()
	nameA := strings.TrimSpace(in.LegA.Rebel)
	nameB := strings.TrimSpace(in.LegB.Rebel)

	ctx, span := otel.Tracer(tracerName).Start(ctx, opNegotiate, trace.WithAttributes(
		attribute.String("rebel.a", nameA),
		attribute.String("rebel.b", nameB),
	))
	defer span.End()

	unlock := a.deps.Base.Locks.LockAll(nameA, nameB)
	defer unlock()

	plan, err := a.prepare(ctx, in)
	if err != nil {
		mapped := rejectRead(a.deps.Base, opNegotiateEvaluate, err, start)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(mapped)))
		return domainagg.NegotiateResult{}, mapped
	}
	span.SetAttributes(attribute.Int("negotiation.points", plan.Price))

	out, err := a.commit(ctx, plan, in.RequestedAt)
	if err != nil {
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
		return domainagg.NegotiateResult{}, err
	}
	return out, nil
}

// prepare reads both parties and the catalog and runs every check. Nothing
// is written; the returned plan carries the versions commit must still see.
func (a *negotiationAggregate) prepare(ctx context.Context, in domainagg.NegotiateInput) (barter.Plan, error) {
	dbc := dbctx.Context{Ctx: ctx}
	templates, err := a.deps.Templates.List(dbc)
	if err != nil {
		return barter.Plan{}, err
	}
	resolve := func(name string) (barter.Party, error) {
		name = strings.TrimSpace(name)
		row, err := a.deps.Rebels.GetByName(dbc, name)
		if err != nil {
			return barter.Party{}, err
		}
		if row == nil {
			return barter.Party{Name: name}, nil
		}
		reports, err := a.deps.Reports.TotalFor(dbc, row.Name)
		if err != nil {
			return barter.Party{}, err
		}
		return barter.Party{
			Name:        row.Name,
			Exists:      true,
			ReportCount: reports,
			Version:     row.Version,
			Holdings:    barter.LedgerOf(row.Name, row.Inventory),
		}, nil
	}
	return barter.Evaluate(resolve, barter.CatalogOf(templates), toLeg(in.LegA), toLeg(in.LegB))
}

// commit applies plan atomically. A party whose version moved since prepare
// fails the whole commit with ConcurrentModification; it is never retried.
func (a *negotiationAggregate) commit(ctx context.Context, plan barter.Plan, at time.Time) (domainagg.NegotiateResult, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	wantA, wantB, err := plan.Project()
	if err != nil {
		return domainagg.NegotiateResult{}, MapError(opNegotiate, err)
	}

	var out domainagg.NegotiateResult
	err = executeWrite(ctx, a.deps.Base, opNegotiate, func(dbc dbctx.Context) error {
		for _, p := range []barter.Party{plan.A, plan.B} {
			ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, "rebels", p.Name, p.Version, map[string]any{
				"version":    gorm.Expr("version + 1"),
				"updated_at": at,
			})
			if err != nil {
				return err
			}
			if err := RequireCASSuccess(ok, plan.A.Name, plan.B.Name); err != nil {
				a.log.Info("stale negotiation snapshot", "rebel", p.Name, "expected_version", p.Version)
				return err
			}
		}

		if err := a.move(dbc, plan, plan.A.Name, plan.B.Name, plan.LegA.Items); err != nil {
			return err
		}
		if err := a.move(dbc, plan, plan.B.Name, plan.A.Name, plan.LegB.Items); err != nil {
			return err
		}

		record, err := newRecord(plan, at)
		if err != nil {
			return err
		}
		if _, err := a.deps.Records.Create(dbc, []*types.NegotiationRecord{record}); err != nil {
			return err
		}

		gotA, err := a.holdings(dbc, plan.A.Name)
		if err != nil {
			return err
		}
		gotB, err := a.holdings(dbc, plan.B.Name)
		if err != nil {
			return err
		}
		if !gotA.Equal(wantA) || !gotB.Equal(wantB) {
			a.log.Error("post-commit holdings differ from plan",
				"rebel_a", plan.A.Name, "rebel_b", plan.B.Name,
				"want_a", wantA.Entries(), "got_a", gotA.Entries(),
				"want_b", wantB.Entries(), "got_b", gotB.Entries(),
			)
			return InvariantError(fmt.Sprintf("holdings of %s and %s diverged from the negotiated plan", plan.A.Name, plan.B.Name))
		}

		out = domainagg.NegotiateResult{
			RecordID: record.ID,
			Points:   plan.Price,
			GivenByA: toTradeItems(plan.LegA.Items),
			GivenByB: toTradeItems(plan.LegB.Items),
			A:        domainagg.PartyInventory{Rebel: plan.A.Name, Inventory: toTradeItems(gotA.Entries())},
			B:        domainagg.PartyInventory{Rebel: plan.B.Name, Inventory: toTradeItems(gotB.Entries())},
			At:       at,
		}
		return nil
	})
	if err != nil {
		return domainagg.NegotiateResult{}, err
	}
	return out, nil
}

func (a *negotiationAggregate) move(dbc dbctx.Context, plan barter.Plan, from, to string, items []barter.Entry) error {
	for _, it := range items {
		ok, err := a.deps.Items.Debit(dbc, from, it.Name, it.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// The version guard held, so stock should still cover the plan.
			a.log.Error("debit rejected under version guard", "rebel", from, "item", it.Name, "quantity", it.Quantity)
			return barter.ConcurrentModification(plan.A.Name, plan.B.Name)
		}
		if err := a.deps.Items.Credit(dbc, to, it.Name, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (a *negotiationAggregate) holdings(dbc dbctx.Context, owner string) (*barter.Ledger, error) {
	rows, err := a.deps.Items.ListByOwner(dbc, owner)
	if err != nil {
		return nil, err
	}
	items := make([]types.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, *r)
	}
	return barter.LedgerOf(owner, items), nil
}

func newRecord(plan barter.Plan, at time.Time) (*types.NegotiationRecord, error) {
	itemsA, err := json.Marshal(nonNilEntries(plan.LegA.Items))
	if err != nil {
		return nil, err
	}
	itemsB, err := json.Marshal(nonNilEntries(plan.LegB.Items))
	if err != nil {
		return nil, err
	}
	return &types.NegotiationRecord{
		ID:        uuid.New(),
		RebelA:    plan.A.Name,
		RebelB:    plan.B.Name,
		ItemsA:    datatypes.JSON(itemsA),
		ItemsB:    datatypes.JSON(itemsB),
		Points:    plan.Price,
		CreatedAt: at,
	}, nil
}

func nonNilEntries(in []barter.Entry) []barter.Entry {
	if in == nil {
		return []barter.Entry{}
	}
	return in
}

func toLeg(in domainagg.TradeLeg) barter.Leg {
	items := make([]barter.Entry, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, barter.Entry{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity})
	}
	return barter.Leg{Rebel: strings.TrimSpace(in.Rebel), Items: items}
}

func toTradeItems(in []barter.Entry) []domainagg.TradeItem {
	out := make([]domainagg.TradeItem, 0, len(in))
	for _, e := range in {
		out = append(out, domainagg.TradeItem{Name: e.Name, Quantity: e.Quantity})
	}
	return out
}
