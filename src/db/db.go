package db

import (
	"fmt"
	"log"

	"villas/src/config"
	"villas/src/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func GetDb() *gorm.DB {
	return db
}

func NewDB(newdb *gorm.DB) {
	db = newdb
}

// Open connects to the relational store selected by cfg.StoreDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if db != nil {
		return db, nil
	}
	switch cfg.StoreDriver {
	case "postgres":
	case "sqlite":
		_db, err := OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		db = _db
		return _db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	gcfg := &gorm.Config{}
	if !cfg.IsLocal() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	_db, err := gorm.Open(postgres.Open(config.GetDSN()), gcfg)
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Printf("Error establishing connection to database: %s\n", err.Error())
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db, nil
}

// OpenSqlite opens a single-connection SQLite database. Use "file::memory:" for a throwaway store.
func OpenSqlite(path string) (*gorm.DB, error) {
	_db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Error opening sqlite database %s: %s\n", path, err.Error())
		return nil, err
	}
	sqlDB, err := _db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return _db, nil
}

func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&models.Villa{},
		&models.Booking{},
		&models.PaymentTransaction{},
		&models.ContactSubmission{},
	)
}
