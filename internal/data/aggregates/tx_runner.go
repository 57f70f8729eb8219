package aggregates

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

// slowTxThreshold is how long a write may hold its rebel locks before it is
// logged. Every other writer on those rebels waits behind it.
const slowTxThreshold = 500 * time.Millisecond

// TxRunner is the transaction boundary for aggregate writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormTxRunner(db *gorm.DB, log *logger.Logger) TxRunner {
	if log == nil {
		log = logger.NewNop()
	}
	return &gormTxRunner{db: db, log: log}
}

// InTx runs fn in one transaction and rolls back on any error. A context
// that is already done never opens a transaction.
func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if d := time.Since(start); d > slowTxThreshold {
		r.log.Warn("slow rebel transaction", "duration", d.String(), "committed", err == nil)
	}
	return err
}
