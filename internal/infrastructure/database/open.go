package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"eventbot/internal/ports/output"
)

// Open migrates and opens the store described by rawURL.
func Open(ctx context.Context, rawURL string, logger logrus.FieldLogger) (output.Store, error) {
	target, err := ParseTarget(rawURL)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(target, logger); err != nil {
		return nil, err
	}

	var store output.Store
	switch target.Dialect {
	case DialectSQLite:
		store, err = OpenSQLite(ctx, target.DSN)
	case DialectPostgres:
		store, err = OpenPostgres(ctx, target.DSN)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", target.Dialect)
	}
	if err != nil {
		return nil, err
	}

	logger.WithField("dialect", target.Dialect).Info("store connected")
	return store, nil
}
