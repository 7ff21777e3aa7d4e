// Package mock provides in-memory infrastructure doubles for the
// integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finwise/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var sharedDb *Db

// Db wraps a shared in-memory SQLite connection migrated with the
// application models. Scenarios share the connection and call Reset between
// runs.
type Db struct {
	Conn   *gorm.DB
	models []any
}

// NewDb returns the shared in-memory database, opening and migrating it on
// first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		sharedDb = open()
	})
	return sharedDb
}

func open() *Db {
	// A single connection keeps the shared-cache memory database alive for
	// the whole suite.
	sqlDB, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	models := []any{
		&model.UserModel{},
		&model.TransactionModel{},
		&model.SubscriptionModel{},
		&model.InvestmentCategoryModel{},
		&model.InvestmentAllocationModel{},
	}
	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{
		Conn:   conn,
		models: models,
	}
}

// Reset removes every row so the next scenario starts from a clean slate.
func (d *Db) Reset() error {
	for _, m := range d.models {
		err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", m, err)
		}
	}
	return nil
}
