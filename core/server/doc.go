// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings, such as the listen
// port and the API key protecting the import endpoints.
//
// # Configuration
//
// The Config struct defines the HTTP port and the API key. An empty API key
// means the server runs unprotected, which is only acceptable for local
// development setups.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the auth middleware to decide whether requests must carry a key.
package server
