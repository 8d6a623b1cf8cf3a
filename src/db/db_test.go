package db

import (
	"testing"

	"villas/src/config"
	"villas/src/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestNewDB(t *testing.T) {
	gormDB, _ := NewMockDB(t)
	NewDB(gormDB)
	t.Cleanup(func() { NewDB(nil) })

	assert.Equal(t, "postgres", GetDb().Name())

	d, err := Open(&config.Config{StoreDriver: "mongo"})
	assert.NoError(t, err)
	assert.Same(t, gormDB, d)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	NewDB(nil)
	_, err := Open(&config.Config{StoreDriver: "mongo"})
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestOpenSqliteMigrate(t *testing.T) {
	NewDB(nil)
	t.Cleanup(func() { NewDB(nil) })

	d, err := Open(&config.Config{StoreDriver: "sqlite", SqlitePath: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(d))

	assert.True(t, d.Migrator().HasTable(&models.Villa{}))
	assert.True(t, d.Migrator().HasTable(&models.PaymentTransaction{}))
	assert.True(t, d.Migrator().HasIndex(&models.PaymentTransaction{}, "SessionID"))
}
