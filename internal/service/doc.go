// Package service implements the application use cases: registering and
// authenticating users, resolving bearer tokens to users, and managing
// tasks on behalf of their owner.
//
// Services return *domain.Error values for conditions the caller can act
// on, and wrap everything else so the API layer reports a generic failure.
// Writes run inside a store.Transactor transaction.
package service
