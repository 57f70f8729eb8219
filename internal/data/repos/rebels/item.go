package rebels

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/forcebook-backend/internal/domain"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type ItemRepo interface {
	ListByOwner(dbc dbctx.Context, owner string) ([]*types.Item, error)
	Quantity(dbc dbctx.Context, owner, template string) (int, error)

	// Debit subtracts qty only when the holding covers it and deletes the row
	// once it reaches zero. It reports false, without writing, otherwise.
	Debit(dbc dbctx.Context, owner, template string, qty int) (bool, error)
	// Credit creates the holding or adds to it.
	Credit(dbc dbctx.Context, owner, template string, qty int) error

	SumByTemplateExcluding(dbc dbctx.Context, excludedOwners []string) (map[string]int64, error)
	PointsHeldBy(dbc dbctx.Context, owners []string) (int64, error)
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) ListByOwner(dbc dbctx.Context, owner string) ([]*types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Item
	if err := t.WithContext(dbc.Ctx).
		Where("owner_name = ?", owner).
		Order("template_name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) Quantity(dbc dbctx.Context, owner, template string) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Item
	if err := t.WithContext(dbc.Ctx).
		Where("owner_name = ? AND template_name = ?", owner, template).
		Limit(1).
		Find(&row).Error; err != nil {
		return 0, err
	}
	return row.Quantity, nil
}

func (r *itemRepo) Debit(dbc dbctx.Context, owner, template string, qty int) (bool, error) {
	if qty == 0 {
		return true, nil
	}
	if qty < 0 {
		return false, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	db := t.WithContext(dbc.Ctx)
	res := db.Model(&types.Item{}).
		Where("owner_name = ? AND template_name = ? AND quantity >= ?", owner, template, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := db.Where("owner_name = ? AND template_name = ? AND quantity <= 0", owner, template).
		Delete(&types.Item{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *itemRepo) Credit(dbc dbctx.Context, owner, template string, qty int) error {
	if qty <= 0 {
		return nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row := &types.Item{
		OwnerName:    owner,
		TemplateName: template,
		Quantity:     qty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_name"}, {Name: "template_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("items.quantity + excluded.quantity"),
				"updated_at": now,
			}),
		}).
		Create(row).Error
}

type templateSum struct {
	TemplateName string
	Total        int64
}

func (r *itemRepo) SumByTemplateExcluding(dbc dbctx.Context, excludedOwners []string) (map[string]int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).
		Model(&types.Item{}).
		Select("template_name, COALESCE(SUM(quantity), 0) AS total")
	if len(excludedOwners) > 0 {
		q = q.Where("owner_name NOT IN ?", excludedOwners)
	}
	var rows []templateSum
	if err := q.Group("template_name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.TemplateName] = row.Total
	}
	return out, nil
}

func (r *itemRepo) PointsHeldBy(dbc dbctx.Context, owners []string) (int64, error) {
	if len(owners) == 0 {
		return 0, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var total int64
	err := t.WithContext(dbc.Ctx).
		Table("items").
		Select("COALESCE(SUM(items.quantity * item_templates.points), 0)").
		Joins("JOIN item_templates ON item_templates.name = items.template_name").
		Where("items.owner_name IN ?", owners).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
