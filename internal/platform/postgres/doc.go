// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also embeds the goose schema
// migrations and maps driver errors onto the store error sentinels.
package postgres
