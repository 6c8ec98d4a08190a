package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_more.sql": {Data: []byte("SELECT 2;")},
		"m/0001_init.sql": {Data: []byte("SELECT 1;")},
		"m/README.md":     {Data: []byte("notes")},
		"m/sub/x.sql":     {Data: []byte("SELECT 3;")},
	}

	files, err := MigrationVersions(fsys, "m")
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_more.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := MigrationVersions(migrationFiles, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_init.sql", files[0])

	body, err := migrationFiles.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "uq_attendance_open_session")

	assert.Contains(t, files, "0002_notification_dedup.sql")
	body, err = migrationFiles.ReadFile("migrations/0002_notification_dedup.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "uq_notifications_dedup")
}
