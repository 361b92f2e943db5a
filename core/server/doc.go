// Package server holds the HTTP server configuration.
//
// The Config struct defines the listening port, the API key guarding /api
// routes, the CORS origins and the read/write timeouts. It is embedded by
// core/config and consumed by the start command.
package server
