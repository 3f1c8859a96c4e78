// Package domain contains the core business entities of the task tracker:
// users, tasks and the dashboard summary derived from them. It also defines
// the error kinds that the service layer reports and the API layer maps to
// HTTP status codes.
//
// The package has no knowledge of persistence or transport.
package domain
