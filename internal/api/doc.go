// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the services in package service:
// handlers read the authenticated user placed in the context by
// middleware.AuthMiddleware and translate categorized errors to status
// codes.
package api
