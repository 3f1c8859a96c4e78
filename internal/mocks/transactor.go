package mocks

import (
	"context"

	"github.com/pontetech/mission-control/internal/store"
)

// MockTransactor implements store.Transactor without a database. The
// function runs inline with a nil transaction.
type MockTransactor struct {
	WithinTxFn func(ctx context.Context, fn store.TxFn) error

	// Calls counts WithinTx invocations.
	Calls int
}

var _ store.Transactor = (*MockTransactor)(nil)

// WithinTx implements store.Transactor.
func (m *MockTransactor) WithinTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}
