package dbhelper

import (
	"closetapi/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

func SetupCleaner(db *gorm.DB) func() {
	return func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Cloth{})
	}
}

func Migrate(db *gorm.DB, model interface{}) error {
	if err := db.AutoMigrate(model); err != nil {
		return pkgerrors.Wrapf(err, "migrate %T", model)
	}
	return nil
}
