package service

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// txRunner runs multi-statement writes atomically. Production wiring uses
// *database.TxRunner; tests substitute a stub that hands fn a nil tx and
// rely on the repository mocks ignoring it.
type txRunner interface {
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}
