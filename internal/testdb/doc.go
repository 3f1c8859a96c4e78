// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database: locating it, applying migrations, and isolating
// each test in a rolled-back transaction.
package testdb
