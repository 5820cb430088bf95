package migrations

import (
	_ "embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_levels.sql
var createLevelsSQL string

//go:embed 0002_create_users.sql
var createUsersSQL string

var Migrations = migrate.NewMigrations()
