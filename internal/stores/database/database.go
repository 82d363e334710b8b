package database

import (
	"fmt"

	"github.com/ethanbaker/analyzer/pkg/utils"
	"github.com/go-sql-driver/mysql"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by the settings. The "memory" driver has no
// database and returns a nil connection; callers fall back to in-memory stores.
func Open(settings utils.DatabaseSettings) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch settings.Driver {
	case "mysql":
		dbConfig := mysql.Config{
			User:                 settings.MySQLUser,
			Passwd:               settings.MySQLPassword,
			Net:                  "tcp",
			Addr:                 fmt.Sprintf("%s:%s", settings.MySQLHost, settings.MySQLPort),
			DBName:               settings.MySQLDatabase,
			ParseTime:            true,
			AllowNativePasswords: true,
			Params:               map[string]string{"charset": "utf8mb4"},
		}
		dialector = gorm_mysql.Open(dbConfig.FormatDSN())

	case "sqlite":
		dialector = sqlite.Open(settings.SQLitePath)

	case "memory":
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", settings.Driver)
	}

	return OpenDialector(dialector)
}

// OpenDialector opens a gorm connection with the options every store relies on
func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		// Duplicate keys surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}
