package testutil

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/aggregates"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
)

// InjectedTxRunner is a test helper for aggregate integration tests.
// With DB set the body runs in a real transaction and an injected commit
// failure rolls back everything the body wrote; without DB no database is
// touched.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin      error
	FailBeforeBody error
	FailCommit     error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

var errInjectedRollback = errors.New("injected rollback")

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failBeforeBody := r.FailBeforeBody
	failCommit := r.FailCommit
	db := r.DB
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	if failBeforeBody != nil {
		r.count(&r.RollbackCalls)
		return failBeforeBody
	}
	if fn == nil {
		r.count(&r.CommitCalls)
		return nil
	}

	if db == nil {
		if err := fn(dbctx.Context{Ctx: ctx}); err != nil {
			r.count(&r.RollbackCalls)
			return err
		}
		if failCommit != nil {
			r.count(&r.RollbackCalls)
			return failCommit
		}
		r.count(&r.CommitCalls)
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
			return err
		}
		if failCommit != nil {
			return errInjectedRollback
		}
		return nil
	})
	switch {
	case errors.Is(err, errInjectedRollback):
		r.count(&r.RollbackCalls)
		return failCommit
	case err != nil:
		r.count(&r.RollbackCalls)
		return err
	}
	r.count(&r.CommitCalls)
	return nil
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
