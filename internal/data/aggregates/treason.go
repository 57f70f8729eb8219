package aggregates

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/forcebook-backend/internal/data/repos"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const opReportTreason = "rebels.treason.report"

type TreasonAggregateDeps struct {
	Base    BaseDeps
	Rebels  repos.RebelRepo
	Reports repos.TreasonReportRepo
}

type treasonAggregate struct {
	deps TreasonAggregateDeps
	log  *logger.Logger
}

func NewTreasonAggregate(deps TreasonAggregateDeps) domainagg.TreasonAggregate {
	deps.Base = deps.Base.withDefaults()
	return &treasonAggregate{
		deps: deps,
		log:  deps.Base.Log.With("aggregate", "TreasonAggregate"),
	}
}

func (a *treasonAggregate) Contract() domainagg.Contract {
	return domainagg.TreasonAggregateContract
}

// Report records one accusation. Repeats by the same accuser count again;
// self-accusation is accepted like any other report.
func (a *treasonAggregate) Report(ctx context.Context, in domainagg.ReportTreasonInput) (domainagg.ReportTreasonResult, error) {
	accuser := strings.TrimSpace(in.Accuser)
	accused := strings.TrimSpace(in.Accused)
	if accuser == "" || accused == "" {
		return domainagg.ReportTreasonResult{}, MapError(opReportTreason, ValidationError("accuser and accused are required"))
	}
	at := in.ReportedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	// Shares the negotiation lock on the accused so a report never lands
	// between a negotiation's read and its commit in this process.
	unlock := a.deps.Base.Locks.Lock(accused)
	defer unlock()

	var out domainagg.ReportTreasonResult
	err := executeWrite(ctx, a.deps.Base, opReportTreason, func(dbc dbctx.Context) error {
		for _, name := range []string{accuser, accused} {
			ok, err := a.deps.Rebels.Exists(dbc, name)
			if err != nil {
				return err
			}
			if !ok {
				return barter.UnknownActor(name)
			}
		}

		before, err := a.deps.Reports.TotalFor(dbc, accused)
		if err != nil {
			return err
		}
		pair, err := a.deps.Reports.Increment(dbc, accuser, accused, at)
		if err != nil {
			return err
		}
		if err := a.deps.Rebels.BumpVersion(dbc, accused); err != nil {
			return err
		}
		total, err := a.deps.Reports.TotalFor(dbc, accused)
		if err != nil {
			return err
		}
		accusers, err := a.deps.Reports.AccusersOf(dbc, accused)
		if err != nil {
			return err
		}

		out = domainagg.ReportTreasonResult{
			Accuser:       accuser,
			Accused:       accused,
			PairCount:     pair,
			TotalReports:  total,
			Accusers:      accusers,
			Traitor:       total >= types.TraitorThreshold,
			BecameTraitor: before < types.TraitorThreshold && total >= types.TraitorThreshold,
		}
		return nil
	})
	if err != nil {
		return domainagg.ReportTreasonResult{}, err
	}
	if out.BecameTraitor {
		a.log.Info("rebel turned traitor", "rebel", accused, "reports", out.TotalReports)
	}
	return out, nil
}
