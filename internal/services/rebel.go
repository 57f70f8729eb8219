package services

import (
	"context"
	"strings"

	"github.com/yungbote/forcebook-backend/internal/data/aggregates"
	"github.com/yungbote/forcebook-backend/internal/data/repos"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const defaultHistoryLimit = 50

type RebelService interface {
	Register(ctx context.Context, req RegisterRebelRequest) (*RebelView, error)
	List(ctx context.Context) ([]RebelView, error)
	Get(ctx context.Context, name string) (*RebelView, error)
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*LocationView, error)
	ReportTreason(ctx context.Context, req ReportTreasonRequest) (*TreasonView, error)
	Negotiate(ctx context.Context, req NegotiateRequest) (*NegotiationView, error)
	History(ctx context.Context, name string, limit int) ([]NegotiationRecordView, error)
	ItemTemplates(ctx context.Context) ([]*types.ItemTemplate, error)
}

type RebelServiceDeps struct {
	Rebels    repos.RebelRepo
	Templates repos.ItemTemplateRepo
	Reports   repos.TreasonReportRepo
	Records   repos.NegotiationRecordRepo

	Registry    domainagg.RegistryAggregate
	Negotiation domainagg.NegotiationAggregate
	Treason     domainagg.TreasonAggregate

	Notifier RebelNotifier
	Metrics  *observability.Metrics
}

type rebelService struct {
	log  *logger.Logger
	deps RebelServiceDeps
}

func NewRebelService(log *logger.Logger, deps RebelServiceDeps) RebelService {
	if deps.Notifier == nil {
		deps.Notifier = NewRebelNotifier(nil)
	}
	return &rebelService{log: log.With("service", "RebelService"), deps: deps}
}

func (s *rebelService) Register(ctx context.Context, req RegisterRebelRequest) (*RebelView, error) {
	res, err := s.deps.Registry.Register(ctx, domainagg.RegisterInput{
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		Location:  req.Location,
		Inventory: tradeItems(req.Inventory),
	})
	if err != nil {
		return nil, err
	}
	view := rebelView(res.Rebel, nil, 0)
	s.deps.Metrics.IncRebelRegistered()
	s.deps.Notifier.Registered(ctx, view)
	return &view, nil
}

func (s *rebelService) List(ctx context.Context) ([]RebelView, error) {
	dbc := dbctx.Of(ctx)
	rows, err := s.deps.Rebels.List(dbc)
	if err != nil {
		return nil, aggregates.MapError("rebels.list", err)
	}
	totals, err := s.deps.Reports.Totals(dbc)
	if err != nil {
		return nil, aggregates.MapError("rebels.list", err)
	}
	out := make([]RebelView, 0, len(rows))
	for _, r := range rows {
		var accusers []string
		if totals[r.Name] > 0 {
			if accusers, err = s.deps.Reports.AccusersOf(dbc, r.Name); err != nil {
				return nil, aggregates.MapError("rebels.list", err)
			}
		}
		out = append(out, rebelView(r, accusers, totals[r.Name]))
	}
	return out, nil
}

func (s *rebelService) Get(ctx context.Context, name string) (*RebelView, error) {
	const op = "rebels.get"
	dbc := dbctx.Of(ctx)
	name = strings.TrimSpace(name)
	row, err := s.deps.Rebels.GetByName(dbc, name)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, aggregates.MapError(op, barter.UnknownActor(name))
	}
	total, err := s.deps.Reports.TotalFor(dbc, row.Name)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	accusers, err := s.deps.Reports.AccusersOf(dbc, row.Name)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	view := rebelView(row, accusers, total)
	return &view, nil
}

func (s *rebelService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) (*LocationView, error) {
	res, err := s.deps.Registry.UpdateLocation(ctx, domainagg.UpdateLocationInput{Name: req.Name, Location: req.Location})
	if err != nil {
		return nil, err
	}
	view := LocationView{Name: res.Name, Location: res.Location}
	s.deps.Notifier.LocationUpdated(ctx, view)
	return &view, nil
}

func (s *rebelService) ReportTreason(ctx context.Context, req ReportTreasonRequest) (*TreasonView, error) {
	res, err := s.deps.Treason.Report(ctx, domainagg.ReportTreasonInput{Accuser: req.Accuser, Accused: req.Accused})
	if err != nil {
		return nil, err
	}
	accusers := res.Accusers
	if accusers == nil {
		accusers = []string{}
	}
	view := TreasonView{Name: res.Accused, ReportedBy: accusers, IsTraitor: res.Traitor}

	s.deps.Metrics.IncTreasonReport(res.BecameTraitor)
	s.deps.Notifier.TreasonReported(ctx, res.Accuser, view)
	if res.BecameTraitor {
		s.deps.Notifier.TurnedTraitor(ctx, res.Accused, res.TotalReports)
	}
	return &view, nil
}

func (s *rebelService) Negotiate(ctx context.Context, req NegotiateRequest) (*NegotiationView, error) {
	res, err := s.deps.Negotiation.Negotiate(ctx, domainagg.NegotiateInput{
		LegA: domainagg.TradeLeg{Rebel: req.LegA.Name, Items: tradeItems(req.LegA.Items)},
		LegB: domainagg.TradeLeg{Rebel: req.LegB.Name, Items: tradeItems(req.LegB.Items)},
	})
	if err != nil {
		s.deps.Metrics.ObserveNegotiation(negotiationOutcome(err), 0)
		return nil, err
	}
	view := NegotiationView{
		ID:     res.RecordID,
		Points: res.Points,
		LegA:   LegView{Name: res.A.Rebel, Items: itemViews(res.A.Inventory)},
		LegB:   LegView{Name: res.B.Rebel, Items: itemViews(res.B.Inventory)},
		At:     res.At,
	}
	s.deps.Metrics.ObserveNegotiation("committed", res.Points)
	s.deps.Notifier.NegotiationCompleted(ctx, view)
	return &view, nil
}

func negotiationOutcome(err error) string {
	if f, ok := barter.AsFailure(err); ok {
		return string(f.Kind)
	}
	return string(domainagg.CodeOf(err))
}

func (s *rebelService) History(ctx context.Context, name string, limit int) ([]NegotiationRecordView, error) {
	const op = "rebels.history"
	dbc := dbctx.Of(ctx)
	name = strings.TrimSpace(name)
	ok, err := s.deps.Rebels.Exists(dbc, name)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if !ok {
		return nil, aggregates.MapError(op, barter.UnknownActor(name))
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.deps.Records.ListByRebel(dbc, name, limit)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	out := make([]NegotiationRecordView, 0, len(rows))
	for _, r := range rows {
		v, err := recordView(r)
		if err != nil {
			s.log.Error("corrupt negotiation record", "id", r.ID, "error", err)
			return nil, aggregates.MapError(op, aggregates.InvariantError("negotiation record "+r.ID.String()+" is unreadable"))
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *rebelService) ItemTemplates(ctx context.Context) ([]*types.ItemTemplate, error) {
	rows, err := s.deps.Templates.List(dbctx.Of(ctx))
	if err != nil {
		return nil, aggregates.MapError("items.list", err)
	}
	return rows, nil
}
