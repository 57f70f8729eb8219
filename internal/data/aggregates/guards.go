package aggregates

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
)

// CASGuard provides optimistic/concurrency guard helpers for aggregate writes.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// UpdateByVersion updates a row only when name+version match.
// Rows in this service are keyed by name, so that is the guard column.
func (g CASGuard) UpdateByVersion(dbc dbctx.Context, table, name string, expectedVersion int, updates map[string]any) (bool, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return false, err
	}
	table = strings.TrimSpace(table)
	name = strings.TrimSpace(name)
	if table == "" || name == "" {
		return false, ValidationError("table and name are required for UpdateByVersion")
	}
	if expectedVersion < 0 {
		return false, ValidationError("expectedVersion must be >= 0")
	}
	if len(updates) == 0 {
		return false, ValidationError("updates must not be empty")
	}
	res := db.Table(table).
		Where("name = ? AND version = ?", name, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RequireCASSuccess turns a compare-and-set that matched no row into the
// stale-snapshot failure of the negotiation between rebelA and rebelB.
func RequireCASSuccess(ok bool, rebelA, rebelB string) error {
	if ok {
		return nil
	}
	return barter.ConcurrentModification(rebelA, rebelB)
}
