// Package store defines the persistence contracts for users and tasks along
// with the transaction helpers services use to group writes. Implementations
// live under internal/platform.
package store
