// Package mocks provides reusable test doubles for the store and auth
// interfaces.
//
// The store mocks are in-memory implementations that behave like the
// PostgreSQL stores, including uniqueness, ordering and not-found errors.
// Each exposes optional function fields that override a method when set, so
// tests can inject failures:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// MockTransactor runs transactional functions inline with a nil *sql.Tx; the
// mock stores return themselves from WithTx.
package mocks
