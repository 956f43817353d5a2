package dbhelper

import (
	"os"
	"time"

	"closetapi/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupDB(databaseURL string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "database handle")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)

	if err := Migrate(db, &models.Cloth{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SetupTestDB connects to TEST_DATABASE_URL. ok is false when the variable is
// not set so callers can skip.
func SetupTestDB() (db *gorm.DB, ok bool, err error) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		return nil, false, nil
	}
	db, err = SetupDB(url, false)
	return db, true, err
}
