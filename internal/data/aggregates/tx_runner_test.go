package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/forcebook-backend/internal/data/repos/testutil"
	types "github.com/yungbote/forcebook-backend/internal/domain"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
)

func TestGormTxRunnerRollsBackOnError(t *testing.T) {
	db := testutil.DB(t)
	r := NewGormTxRunner(db, nil)
	boom := errors.New("boom")

	err := r.InTx(context.Background(), func(dbc dbctx.Context) error {
		if dbc.Tx == nil {
			t.Fatalf("expected a transaction handle")
		}
		if err := dbc.Tx.Create(&types.ItemTemplate{Name: "Weapon", Points: 4}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected body error, got %v", err)
	}
	var n int64
	if err := db.Model(&types.ItemTemplate{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("write survived rollback: rows=%d", n)
	}

	if err := r.InTx(context.Background(), func(dbc dbctx.Context) error {
		return dbc.Tx.Create(&types.ItemTemplate{Name: "Food", Points: 1}).Error
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := db.Model(&types.ItemTemplate{}).Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("committed rows: n=%d err=%v", n, err)
	}
}

func TestGormTxRunnerSkipsDoneContext(t *testing.T) {
	r := NewGormTxRunner(testutil.DB(t), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := r.InTx(ctx, func(dbctx.Context) error {
		called = true
		return nil
	})
	if called {
		t.Fatalf("body must not run on a cancelled context")
	}
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeRetryable) {
		t.Fatalf("expected retryable, got %v", err)
	}
}

func TestGormTxRunnerWithoutDB(t *testing.T) {
	err := NewGormTxRunner(nil, nil).InTx(context.Background(), func(dbctx.Context) error { return nil })
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
