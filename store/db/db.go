package db

import (
	"github.com/pkg/errors"

	"github.com/craftdeck/craftdeck/internal/profile"
	"github.com/craftdeck/craftdeck/store"
	"github.com/craftdeck/craftdeck/store/db/postgres"
	"github.com/craftdeck/craftdeck/store/db/sqlite"
)

// NewDBDriver creates a new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver: only 'postgres' and 'sqlite' are supported")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}

	return driver, nil
}
