package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/nikhil/zsechat/internal/config"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	req.NoError(err)
	t.Cleanup(func() { db.Close() })

	req.NoError(Migrate(ctx, db, config.DriverSQLite))
	// a second run finds everything applied
	req.NoError(Migrate(ctx, db, config.DriverSQLite))

	for _, table := range []string{"users", "channels", "channel_members", "messages"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		req.NoError(err, table)
	}

	var applied int
	req.NoError(db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	req.Equal(1, applied)
}

func TestMigrate_MySQLFilesAreEmbedded(t *testing.T) {
	req := require.New(t)
	content, err := migrationFS.ReadFile("migrations/mysql/001_init.sql")
	req.NoError(err)
	req.Len(splitStatements(string(content)), 4)
}

func TestUniqueViolation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	req.NoError(err)
	t.Cleanup(func() { db.Close() })
	req.NoError(Migrate(ctx, db, config.DriverSQLite))

	insert := "INSERT INTO users (nickname, email, created_at) VALUES (?, ?, 0)"
	_, err = db.ExecContext(ctx, insert, "alice", "alice@example.com")
	req.NoError(err)
	_, err = db.ExecContext(ctx, insert, "alice", "other@example.com")

	message, ok := UniqueViolation(err)
	req.True(ok)
	req.Contains(message, "users.nickname")

	message, ok = UniqueViolation(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b' for key 'users.users_email'"})
	req.True(ok)
	req.Contains(message, "users_email")

	_, ok = UniqueViolation(errors.New("boom"))
	req.False(ok)
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.Config{DBUser: "chat", DBPassword: "secret", DBHost: "db", DBPort: 3306, DBName: "chat"})
	req := require.New(t)
	req.True(strings.HasPrefix(dsn, "chat:secret@tcp(db:3306)/chat?"), dsn)
	req.Contains(dsn, "parseTime=true")
}
