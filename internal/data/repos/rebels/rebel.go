package rebels

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type RebelRepo interface {
	Create(dbc dbctx.Context, rows []*types.Rebel) ([]*types.Rebel, error)

	GetByName(dbc dbctx.Context, name string) (*types.Rebel, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.Rebel, error)
	Exists(dbc dbctx.Context, name string) (bool, error)
	List(dbc dbctx.Context) ([]*types.Rebel, error)
	Count(dbc dbctx.Context) (int64, error)

	UpdateLocation(dbc dbctx.Context, name string, loc types.Location) (bool, error)
	BumpVersion(dbc dbctx.Context, name string) error
}

type rebelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRebelRepo(db *gorm.DB, baseLog *logger.Logger) RebelRepo {
	return &rebelRepo{db: db, log: baseLog.With("repo", "RebelRepo")}
}

func preloadInventory(db *gorm.DB) *gorm.DB {
	return db.Preload("Inventory", func(q *gorm.DB) *gorm.DB {
		return q.Order("template_name ASC")
	})
}

// Create inserts rebel rows only; holdings go through ItemRepo.
func (r *rebelRepo) Create(dbc dbctx.Context, rows []*types.Rebel) ([]*types.Rebel, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Rebel{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *rebelRepo) GetByName(dbc dbctx.Context, name string) (*types.Rebel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	rows, err := r.GetByNames(dbc, []string{name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *rebelRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.Rebel, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Rebel
	if len(names) == 0 {
		return out, nil
	}
	if err := preloadInventory(t.WithContext(dbc.Ctx)).
		Where("name IN ?", names).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rebelRepo) Exists(dbc dbctx.Context, name string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Rebel{}).Where("name = ?", strings.TrimSpace(name)).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rebelRepo) List(dbc dbctx.Context) ([]*types.Rebel, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Rebel
	if err := preloadInventory(t.WithContext(dbc.Ctx)).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *rebelRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Rebel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *rebelRepo) UpdateLocation(dbc dbctx.Context, name string, loc types.Location) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Rebel{}).
		Where("name = ?", strings.TrimSpace(name)).
		Updates(map[string]interface{}{
			"location_name":      loc.Name,
			"location_latitude":  loc.Latitude,
			"location_longitude": loc.Longitude,
			"updated_at":         time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *rebelRepo) BumpVersion(dbc dbctx.Context, name string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.Rebel{}).
		Where("name = ?", strings.TrimSpace(name)).
		Updates(map[string]interface{}{
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}
