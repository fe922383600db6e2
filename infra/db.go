package infra

import (
	"database/sql"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/rythmn1111/final-cam/ports"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // purego sqlite3 driver
)

const (
	DriverSqlite         = "sqlite"
	DriverPostgres       = "postgres"
	SourceSqliteInMemory = "file::memory:?cache=shared&_pragma=foreign_keys(1)"
)

// NewDatabase opens the named database and returns it with a close
// function. The sqlite driver backs the local publish history, the
// postgres driver backs the external ledger.
func NewDatabase(log ports.Logger, driver, source string) (ports.DB, func(), error) {
	dbLogger := slogGorm.New(slogGorm.WithHandler(log.Handler()))

	if driver == DriverPostgres {
		db, err := gorm.Open(postgres.Open(source), &gorm.Config{
			Logger: dbLogger,
		})
		if err != nil {
			return nil, nil, err
		}
		closeDb := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return db, closeDb, nil
	}

	sqlDB, err := sql.Open(driver, source)
	if err != nil {
		return nil, nil, err
	}

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return db, func() { sqlDB.Close() }, nil
}
