package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Ordered(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestMigrations_AreRerunnable(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)

	for _, name := range names {
		body, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)

		for _, stmt := range strings.Split(string(body), ";") {
			stmt = strings.TrimSpace(stmt)
			if !strings.HasPrefix(stmt, "CREATE") {
				continue
			}
			assert.Contains(t, stmt, "IF NOT EXISTS", "%s: %s", name, stmt)
		}
	}
}

func TestConnectAndMigrate(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))
}

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := Connect(context.Background(), "://not a dsn")
	assert.Error(t, err)
}
