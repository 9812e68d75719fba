package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := Connect(t.Context(), ConnectionConfig{Driver: DriverSQLite, DSN: dsn, MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestConnect_Rejects(t *testing.T) {
	_, err := Connect(t.Context(), ConnectionConfig{Driver: DriverSQLite}, nil)
	require.ErrorContains(t, err, "DSN is required")

	_, err = Connect(t.Context(), ConnectionConfig{Driver: "mysql", DSN: "root@/hawker"}, nil)
	require.ErrorContains(t, err, "unsupported database driver")
}
