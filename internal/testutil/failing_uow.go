package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/normgate/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork whose transaction returns Err from the
// FailOn-th write (1-based). Reads pass through uncounted. Use it to prove
// that an assessment and its findings roll back together.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

var _ db.UnitOfWork = (*FailOnNthExecUoW)(nil)

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.RunTx(ctx, u.DB, func(tx *sql.Tx) db.DBTX {
		return &faultyWriter{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}, fn)
}

type faultyWriter struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (w *faultyWriter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if w.writes.Add(1) == w.failOn {
		return nil, w.err
	}
	return w.DBTX.ExecContext(ctx, query, args...)
}
