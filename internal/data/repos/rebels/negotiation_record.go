package rebels

import (
	"gorm.io/gorm"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type NegotiationRecordRepo interface {
	Create(dbc dbctx.Context, rows []*types.NegotiationRecord) ([]*types.NegotiationRecord, error)
	ListByRebel(dbc dbctx.Context, name string, limit int) ([]*types.NegotiationRecord, error)
}

type negotiationRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNegotiationRecordRepo(db *gorm.DB, baseLog *logger.Logger) NegotiationRecordRepo {
	return &negotiationRecordRepo{db: db, log: baseLog.With("repo", "NegotiationRecordRepo")}
}

func (r *negotiationRecordRepo) Create(dbc dbctx.Context, rows []*types.NegotiationRecord) ([]*types.NegotiationRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.NegotiationRecord{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *negotiationRecordRepo) ListByRebel(dbc dbctx.Context, name string, limit int) ([]*types.NegotiationRecord, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []*types.NegotiationRecord
	if err := t.WithContext(dbc.Ctx).
		Where("rebel_a = ? OR rebel_b = ?", name, name).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
