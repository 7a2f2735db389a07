package commands

import (
	"database/sql"

	"github.com/tipline/tipline/config"
	"github.com/tipline/tipline/db"
	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/logger"
)

// openDatabase opens and migrates the database at the configured path, or
// at dbPath when given.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		path, err := config.GetDatabasePath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get database path")
		}
		if path == "" {
			dbPath = "tipline.db"
		} else {
			dbPath = path
		}
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}
