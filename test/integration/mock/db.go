package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	db     *Db
)

// Db is a shared in-memory SQLite ledger. Models are keyed by table name so
// steps can look them up when counting rows.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	tables []string
}

// NewDb opens the named in-memory database once per process and migrates the
// given models. Later calls return the same instance.
func NewDb(name string, models map[string]any) *Db {
	dbOnce.Do(func() {
		var err error
		db, err = open(name, models)
		if err != nil {
			panic(fmt.Sprintf("failed to prepare ledger database: %s", err))
		}
	})
	return db
}

func open(name string, models map[string]any) (*Db, error) {
	sqlDB, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	// A single connection keeps the memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	d := &Db{DbConn: conn, models: models}
	for table := range models {
		d.tables = append(d.tables, table)
	}
	sort.Strings(d.tables)

	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

// migrate runs with foreign keys off so map order does not matter.
func (d *Db) migrate() error {
	return d.withoutForeignKeys(func(tx *gorm.DB) error {
		for _, table := range d.tables {
			if err := tx.AutoMigrate(d.models[table]); err != nil {
				return fmt.Errorf("migrate %s: %w", table, err)
			}
			if !tx.Migrator().HasTable(d.models[table]) {
				return fmt.Errorf("table %s was not created", table)
			}
		}
		return nil
	})
}

// ClearDB empties every table between scenarios.
func (d *Db) ClearDB() error {
	return d.withoutForeignKeys(func(tx *gorm.DB) error {
		for _, table := range d.tables {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %q", table)).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (d *Db) withoutForeignKeys(fn func(tx *gorm.DB) error) error {
	if err := d.DbConn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer d.DbConn.Exec("PRAGMA foreign_keys = ON")

	return d.DbConn.Transaction(fn)
}

// GetModel returns the model registered for a table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
