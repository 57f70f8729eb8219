package rebels

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type TreasonReportRepo interface {
	Get(dbc dbctx.Context, accuser, accused string) (*types.TreasonReport, error)
	// Increment creates the pair at 1 or adds one, returning the new count.
	Increment(dbc dbctx.Context, accuser, accused string, at time.Time) (int, error)

	TotalFor(dbc dbctx.Context, accused string) (int, error)
	AccusersOf(dbc dbctx.Context, accused string) ([]string, error)
	Totals(dbc dbctx.Context) (map[string]int, error)
	// TraitorNames lists rebels whose summed report count reaches threshold.
	TraitorNames(dbc dbctx.Context, threshold int) ([]string, error)
}

type treasonReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTreasonReportRepo(db *gorm.DB, baseLog *logger.Logger) TreasonReportRepo {
	return &treasonReportRepo{db: db, log: baseLog.With("repo", "TreasonReportRepo")}
}

func (r *treasonReportRepo) Get(dbc dbctx.Context, accuser, accused string) (*types.TreasonReport, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.TreasonReport
	if err := t.WithContext(dbc.Ctx).
		Where("accuser_name = ? AND accused_name = ?", accuser, accused).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.AccusedName == "" {
		return nil, nil
	}
	return &row, nil
}

func (r *treasonReportRepo) Increment(dbc dbctx.Context, accuser, accused string, at time.Time) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	row := &types.TreasonReport{
		AccuserName: accuser,
		AccusedName: accused,
		ReportCount: 1,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "accuser_name"}, {Name: "accused_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"report_count": gorm.Expr("treason_reports.report_count + 1"),
				"updated_at":   at,
			}),
		}).
		Create(row).Error
	if err != nil {
		return 0, err
	}
	got, err := r.Get(dbctx.Context{Ctx: dbc.Ctx, Tx: t}, accuser, accused)
	if err != nil {
		return 0, err
	}
	if got == nil {
		return 0, gorm.ErrRecordNotFound
	}
	return got.ReportCount, nil
}

func (r *treasonReportRepo) TotalFor(dbc dbctx.Context, accused string) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.TreasonReport{}).
		Select("COALESCE(SUM(report_count), 0)").
		Where("accused_name = ?", accused).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *treasonReportRepo) AccusersOf(dbc dbctx.Context, accused string) ([]string, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []string
	if err := t.WithContext(dbc.Ctx).
		Model(&types.TreasonReport{}).
		Where("accused_name = ?", accused).
		Order("created_at ASC, accuser_name ASC").
		Pluck("accuser_name", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type accusedTotal struct {
	AccusedName string
	Total       int64
}

func (r *treasonReportRepo) Totals(dbc dbctx.Context) (map[string]int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var rows []accusedTotal
	if err := t.WithContext(dbc.Ctx).
		Model(&types.TreasonReport{}).
		Select("accused_name, COALESCE(SUM(report_count), 0) AS total").
		Group("accused_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.AccusedName] = int(row.Total)
	}
	return out, nil
}

func (r *treasonReportRepo) TraitorNames(dbc dbctx.Context, threshold int) ([]string, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []string
	if err := t.WithContext(dbc.Ctx).
		Model(&types.TreasonReport{}).
		Select("accused_name").
		Group("accused_name").
		Having("SUM(report_count) >= ?", threshold).
		Order("accused_name ASC").
		Pluck("accused_name", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
