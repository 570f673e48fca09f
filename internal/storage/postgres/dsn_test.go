package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "billing", Password: "s3cret", Name: "billing"}
	assert.Equal(t, "host=db port=5433 user=billing password=s3cret dbname=billing sslmode=disable", DSN(cfg))

	cfg.Password = ""
	assert.Contains(t, DSN(cfg), "password='' ")

	cfg.Password = `it's a pass`
	assert.Contains(t, DSN(cfg), `password='it\'s a pass' `)
}

func TestMigrationsEmbedded(t *testing.T) {
	ups, err := fs.Glob(migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups), "every migration can be rolled back")
}
