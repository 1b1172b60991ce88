package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx wraps a pgx transaction and collects callbacks that run only after a
// successful commit.
type Tx struct {
	pgx.Tx

	mu    sync.Mutex
	hooks []func()
}

// OnCommit registers fn to run after the transaction commits. Hooks never run on rollback.
func (t *Tx) OnCommit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, fn)
}

func (t *Tx) runHooks() {
	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

type txKey struct{}

// TxFromContext returns the transaction started by RunInTx, if any.
func TxFromContext(ctx context.Context) *Tx {
	tx, _ := ctx.Value(txKey{}).(*Tx)
	return tx
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db Querier) Querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

// OnCommit defers fn until the transaction in ctx commits. Outside a
// transaction the write is already durable, so fn runs immediately.
func OnCommit(ctx context.Context, fn func()) {
	if tx := TxFromContext(ctx); tx != nil {
		tx.OnCommit(fn)
		return
	}
	fn()
}

// RunInTx executes fn inside a transaction. Nested calls join the outer transaction.
func RunInTx(ctx context.Context, db PgxIface, fn func(ctx context.Context) error) (err error) {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	pgTx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{Tx: pgTx}
	committed := false
	defer func() {
		if !committed {
			if rbErr := pgTx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := pgTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	tx.runHooks()
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
