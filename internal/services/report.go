package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/forcebook-backend/internal/data/aggregates"
	"github.com/yungbote/forcebook-backend/internal/data/repos"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

// ReportService answers the read-only population reports. Every figure is
// computed from the stored counters at request time; with no rebels
// registered all rates and averages are 0.
type ReportService interface {
	TraitorsRate(ctx context.Context) (float64, error)
	NonTraitorsRate(ctx context.Context) (float64, error)
	AverageItems(ctx context.Context) ([]ItemAverage, error)
	TraitorsPoints(ctx context.Context) (int64, error)
	Summary(ctx context.Context) (*Summary, error)
}

type reportService struct {
	log       *logger.Logger
	rebels    repos.RebelRepo
	items     repos.ItemRepo
	templates repos.ItemTemplateRepo
	reports   repos.TreasonReportRepo
}

func NewReportService(log *logger.Logger, rebels repos.RebelRepo, items repos.ItemRepo, templates repos.ItemTemplateRepo, reports repos.TreasonReportRepo) ReportService {
	return &reportService{
		log:       log.With("service", "ReportService"),
		rebels:    rebels,
		items:     items,
		templates: templates,
		reports:   reports,
	}
}

type population struct {
	total    int64
	traitors []string
}

func (s *reportService) population(dbc dbctx.Context) (population, error) {
	total, err := s.rebels.Count(dbc)
	if err != nil {
		return population{}, err
	}
	traitors, err := s.reports.TraitorNames(dbc, types.TraitorThreshold)
	if err != nil {
		return population{}, err
	}
	return population{total: total, traitors: traitors}, nil
}

func (p population) traitorsRate() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(len(p.traitors)) / float64(p.total) * 100
}

func (p population) nonTraitorsRate() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.total-int64(len(p.traitors))) / float64(p.total) * 100
}

func (s *reportService) TraitorsRate(ctx context.Context) (float64, error) {
	p, err := s.population(dbctx.Of(ctx))
	if err != nil {
		return 0, aggregates.MapError("reports.traitors_rate", err)
	}
	return p.traitorsRate(), nil
}

func (s *reportService) NonTraitorsRate(ctx context.Context) (float64, error) {
	p, err := s.population(dbctx.Of(ctx))
	if err != nil {
		return 0, aggregates.MapError("reports.non_traitors_rate", err)
	}
	return p.nonTraitorsRate(), nil
}

func (s *reportService) AverageItems(ctx context.Context) ([]ItemAverage, error) {
	dbc := dbctx.Of(ctx)
	p, err := s.population(dbc)
	if err != nil {
		return nil, aggregates.MapError("reports.avg_item", err)
	}
	out, err := s.averages(dbc, p)
	if err != nil {
		return nil, aggregates.MapError("reports.avg_item", err)
	}
	return out, nil
}

// averages divides what non-traitors hold of each catalog item by the whole
// population, traitors included.
func (s *reportService) averages(dbc dbctx.Context, p population) ([]ItemAverage, error) {
	templates, err := s.templates.List(dbc)
	if err != nil {
		return nil, err
	}
	sums, err := s.items.SumByTemplateExcluding(dbc, p.traitors)
	if err != nil {
		return nil, err
	}
	out := make([]ItemAverage, 0, len(templates))
	for _, t := range templates {
		avg := 0.0
		if p.total > 0 {
			avg = float64(sums[t.Name]) / float64(p.total)
		}
		out = append(out, ItemAverage{Name: t.Name, Avg: avg})
	}
	return out, nil
}

func (s *reportService) TraitorsPoints(ctx context.Context) (int64, error) {
	dbc := dbctx.Of(ctx)
	traitors, err := s.reports.TraitorNames(dbc, types.TraitorThreshold)
	if err != nil {
		return 0, aggregates.MapError("reports.traitors_points", err)
	}
	points, err := s.items.PointsHeldBy(dbc, traitors)
	if err != nil {
		return 0, aggregates.MapError("reports.traitors_points", err)
	}
	return points, nil
}

// Summary computes every report from one population snapshot, running the
// item queries concurrently.
func (s *reportService) Summary(ctx context.Context) (*Summary, error) {
	const op = "reports.summary"
	p, err := s.population(dbctx.Of(ctx))
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	out := &Summary{
		Rebels:          p.total,
		Traitors:        len(p.traitors),
		TraitorsRate:    p.traitorsRate(),
		NonTraitorsRate: p.nonTraitorsRate(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		avgs, err := s.averages(dbctx.Of(gctx), p)
		if err != nil {
			return err
		}
		out.AverageItems = avgs
		return nil
	})
	g.Go(func() error {
		points, err := s.items.PointsHeldBy(dbctx.Of(gctx), p.traitors)
		if err != nil {
			return err
		}
		out.TraitorsPoints = points
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("summary query failed", "error", err)
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}
