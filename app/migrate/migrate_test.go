package migrate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lingo-guard/app/models"
	"lingo-guard/app/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "users.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}))
	return gdb
}

func writeRegistry(t *testing.T, reg store.Registry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	data, err := json.Marshal(reg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunNormalizesAndBackfills(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	path := writeRegistry(t, store.Registry{
		Users: []models.User{
			{ID: "u1", Username: "Alice", Email: "Alice@X.com", PasswordHash: "deadbeef", Salt: "cafe"},
			{ID: "u2", Username: "olduser", Email: "old@x.com"},
		},
		LegacyPasswords: map[string]string{"olduser": "hunter2"},
	})

	count, err := Run(ctx, path, gdb)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	docs := store.NewDocumentStore(gdb)
	u, err := docs.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, "deadbeef", u.PasswordHash)

	u, err = docs.FindByUsername(ctx, "olduser")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "hunter2", u.Password, "legacy password backfilled into the record")
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	path := writeRegistry(t, store.Registry{
		Users: []models.User{{ID: "u1", Username: "alice", Email: "alice@x.com", PasswordHash: "deadbeef", Salt: "cafe"}},
	})

	for i := 0; i < 2; i++ {
		count, err := Run(ctx, path, gdb)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	}

	docs := store.NewDocumentStore(gdb)
	total, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "re-running must upsert, not duplicate")
}

func TestRunBackfillKeyedByLowercasedUsername(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	// the side table is keyed by the already-lowercased name, as the
	// normalization step runs before the backfill lookup
	path := writeRegistry(t, store.Registry{
		Users:           []models.User{{ID: "u1", Username: "OldUser"}},
		LegacyPasswords: map[string]string{"olduser": "hunter2"},
	})

	_, err := Run(ctx, path, gdb)
	require.NoError(t, err)

	docs := store.NewDocumentStore(gdb)
	u, err := docs.FindByUsername(ctx, "olduser")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "hunter2", u.Password)
}
