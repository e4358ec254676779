package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", ":memory:")
}

func TestLoadDefaults(t *testing.T) {
	req := require.New(t)
	setSQLiteEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	req.NoError(err)

	req.Equal("development", cfg.AppEnv)
	req.Equal("0.0.0.0:8080", cfg.Addr())
	req.Equal(168*time.Hour, cfg.JWTTTL)
	req.Equal(10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvFile(t *testing.T) {
	req := require.New(t)
	setSQLiteEnv(t)
	t.Setenv("PORT", "9090")
	// godotenv never overrides a variable that is already set
	t.Setenv("JWT_TTL", "")
	os.Unsetenv("JWT_TTL")

	file := filepath.Join(t.TempDir(), ".env")
	req.NoError(os.WriteFile(file, []byte("PORT=7070\nJWT_TTL=2h\n"), 0o600))

	cfg, err := Load(file)
	req.NoError(err)
	req.Equal(9090, cfg.Port)
	req.Equal(2*time.Hour, cfg.JWTTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	req := require.New(t)
	setSQLiteEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	req.Error(err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		JWTSecret:  "secret",
		JWTTTL:     time.Hour,
		DBDriver:   DriverMySQL,
		DBUser:     "chat",
		DBName:     "chat",
		SQLitePath: "chat.db",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "mysql", mutate: func(*Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.DBUser = "" }},
		{name: "blank secret", mutate: func(c *Config) { c.JWTSecret = "  " }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.JWTTTL = 0 }, wantErr: true},
		{name: "mysql without database", mutate: func(c *Config) { c.DBName = "" }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "postgres" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrigins(t *testing.T) {
	req := require.New(t)

	req.Empty(Config{}.Origins())
	req.Equal(
		[]string{"http://chat.example", "https://app.example"},
		Config{AllowedOrigins: " http://chat.example, ,https://app.example "}.Origins(),
	)
}
