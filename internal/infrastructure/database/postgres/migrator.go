package postgres

import (
	"database/sql"
	gerrors "errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file:// migration source

	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
)

// Migrate applies every pending schema migration from sourceURL (a file://
// path).  An already up-to-date schema is not an error.
func Migrate(db *sql.DB, sourceURL string, logger logging.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "init migration driver")
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "init migrator")
	}

	if err := m.Up(); err != nil {
		if gerrors.Is(err, migrate.ErrNoChange) {
			logger.Debug("schema already up to date")
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "apply migrations")
	}

	version, dirty, _ := m.Version()
	logger.Info("schema migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty),
	)
	return nil
}
