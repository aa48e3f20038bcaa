package gormstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantSQLite bool
		wantErr    bool
	}{
		{name: "postgres url", url: "postgres://u:p@localhost:5432/db"},
		{name: "postgresql url", url: "postgresql://u:p@localhost/db?sslmode=disable"},
		{name: "key value dsn", url: "host=localhost user=u dbname=db"},
		{name: "sqlite relative path", url: "sqlite:///./todo_app.db", wantSQLite: true},
		{name: "sqlite short form", url: "sqlite://todo_app.db", wantSQLite: true},
		{name: "sqlite file dsn", url: "file:test.db?cache=shared", wantSQLite: true},
		{name: "empty", url: "", wantErr: true},
		{name: "unsupported scheme", url: "mysql://localhost/db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialector, isSQLite, err := dialectorFor(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, dialector)
			assert.Equal(t, tt.wantSQLite, isSQLite)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "app.db?_foreign_keys=off", sqliteDSN("app.db?_foreign_keys=off"))
}

func TestNewConnection_SQLiteMigrates(t *testing.T) {
	db, err := NewConnection("sqlite://file::memory:", false)
	require.NoError(t, err)

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
