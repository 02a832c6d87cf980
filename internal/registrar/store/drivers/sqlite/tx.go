package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/registrar/internal/registrar/store"
	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/query"
)

var errNestedTx = errors.New("sqlite: nested transactions are not supported")

// txStore is the store.Tx handed to WithTx callbacks. Its repositories run
// on the transaction; the lifecycle methods of the outer store are inert.
type txStore struct {
	repos
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{repos: repos{q: query.New(tx)}, tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, errNestedTx }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return errNestedTx }

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) Close() error                   { return nil }
