// Package attemptdb holds all the migrations for the attempt database
package attemptdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the registry all attempt database migrations attach to.
var Migrations = migrate.NewMigrations()
