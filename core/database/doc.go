// Package database handles database connections for the catalog schema.
//
// It provides a wrapper around GORM to configure MySQL connections based on
// the application's configuration, with connection pooling and an initial
// ping so startup fails fast when the database is unreachable.
//
// # Drivers
//
// MySQL is the production driver. A sqlite driver is supported so tests can
// run the real schema against an in-memory database:
//
//	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
package database
