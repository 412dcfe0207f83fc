package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"eventbot/internal/infrastructure/database"
	"eventbot/internal/ports/output"
)

// NewSQLiteStore returns a migrated store backed by a file in t.TempDir.
func NewSQLiteStore(t *testing.T) output.Store {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store, err := database.Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "eventbot.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
