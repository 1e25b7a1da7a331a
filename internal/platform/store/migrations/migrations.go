// Package migrations holds the embedded schema and runs it with golang-migrate
package migrations

import (
	"database/sql"
	"embed"
	"errors"

	perr "villagevisits/internal/platform/errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Files exposes the embedded migration set
func Files() embed.FS { return files }

func open(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "migrations source")
	}
	drv, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "migrations driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "migrations init")
	}
	return m, nil
}

// Up applies every pending migration, a database already at head is not an error
func Up(db *sql.DB) error {
	m, err := open(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return perr.Wrapf(err, perr.ErrorCodeDB, "migrate up")
	}
	return nil
}

// Down rolls back n migrations, n <= 0 rolls back everything
func Down(db *sql.DB, n int) error {
	m, err := open(db)
	if err != nil {
		return err
	}
	if n <= 0 {
		err = m.Down()
	} else {
		err = m.Steps(-n)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return perr.Wrapf(err, perr.ErrorCodeDB, "migrate down")
	}
	return nil
}

// Version reports the applied version and whether the last run left it dirty
func Version(db *sql.DB) (uint, bool, error) {
	m, err := open(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, perr.Wrapf(err, perr.ErrorCodeDB, "migrate version")
	}
	return v, dirty, nil
}
