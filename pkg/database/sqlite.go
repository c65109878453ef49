package database

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrBusy is returned when the store cannot grant write access within the
// busy timeout. Callers should map it to a retryable 503, never block on it.
var ErrBusy = errors.New("database is busy, please retry")

func ConnectDB() *gorm.DB {
	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "bizbook.db"
	}

	// WAL keeps readers concurrent with the single writer; the busy timeout
	// bounds how long a writer waits for the lock before SQLITE_BUSY.
	dsn := "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	// Small fixed pool: SQLite allows one writer at a time, extra connections
	// only help readers. Writers past the busy timeout surface ErrBusy.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetMaxOpenConns(8)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established:", path)
	return db
}

// IsBusy reports whether err is a transient lock contention error from the
// store, either our own sentinel or a raw SQLITE_BUSY / SQLITE_LOCKED.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBusy) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}
