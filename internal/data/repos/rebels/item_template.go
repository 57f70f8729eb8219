package rebels

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type ItemTemplateRepo interface {
	List(dbc dbctx.Context) ([]*types.ItemTemplate, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.ItemTemplate, error)
	// Upsert inserts missing templates and refreshes points of existing ones.
	Upsert(dbc dbctx.Context, rows []*types.ItemTemplate) error
}

type itemTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemTemplateRepo(db *gorm.DB, baseLog *logger.Logger) ItemTemplateRepo {
	return &itemTemplateRepo{db: db, log: baseLog.With("repo", "ItemTemplateRepo")}
}

func (r *itemTemplateRepo) List(dbc dbctx.Context) ([]*types.ItemTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ItemTemplate
	if err := t.WithContext(dbc.Ctx).Order("points DESC, name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemTemplateRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.ItemTemplate, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ItemTemplate
	if len(names) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("name IN ?", names).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemTemplateRepo) Upsert(dbc dbctx.Context, rows []*types.ItemTemplate) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"points"}),
		}).
		Create(&rows).Error
}
