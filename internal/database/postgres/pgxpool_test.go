package postgres

import (
	"context"
	"testing"

	"career-insights/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "insights",
		DBPassword: "s3cr et's",
		DBName:     "jobs",
	})
	assert.Equal(t, `host=db port=5432 user=insights password='s3cr et\'s' dbname=jobs sslmode=disable`, dsn)

	pcfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "s3cr et's", pcfg.ConnConfig.Password)
	assert.Equal(t, "db", pcfg.ConnConfig.Host)
}

func TestDSN_EmptyPassword(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "db", DBPort: "5432", DBUser: "u", DBName: "n", DBSSLMode: "require"})
	assert.Contains(t, dsn, "password=''")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestPool_NilIsSafe(t *testing.T) {
	var p *Pool
	ctx := context.Background()
	assert.ErrorIs(t, p.Ping(ctx), errNilDB)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, errNilDB)
	var n int
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(&n), errNilDB)
	assert.NoError(t, p.Close())
}
