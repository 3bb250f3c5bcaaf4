package database

import "context"

// TxFunc runs with a context carrying the active transaction.
type TxFunc func(ctx context.Context) error

// TxRunner executes fn inside one all-or-nothing transaction boundary.
// Implementations inject the transaction into the context so repositories
// pick it up through their querier resolution.
type TxRunner interface {
	RunTx(ctx context.Context, fn TxFunc) error
}

// PassthroughTx runs fn directly, for stores without transaction support.
type PassthroughTx struct{}

func (PassthroughTx) RunTx(ctx context.Context, fn TxFunc) error {
	return fn(ctx)
}
