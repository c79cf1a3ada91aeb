// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The database holds the two keyed
// tables the sync engine relies on: media_records (fingerprints per external
// id) and product_records (products per SKU).
//
// # Connect
//
// The Connect function establishes the connection with sane pool settings and
// verifies it with a bounded ping. Every side of the connection (dial, read,
// write) carries the configured timeout.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema. VerifySchema is
// used by the CLI commands (which do not auto-migrate) to confirm that the
// sync tables exist and carry the expected columns before mutating them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	problems, err := database.VerifySchema(db, map[string][]string{
//	    "media_records": {"external_id", "object_name", "fingerprint"},
//	})
package database
