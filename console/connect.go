package console

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frigotec.com/frigotec/infrastructure/devops"
	"frigotec.com/frigotec/utils"
)

// Connect opens the tenant database for one named environment from the
// shared "databases" parameter. Operator tooling only; the service
// itself goes through the DatabaseManager.
func Connect(ctx context.Context, env, schema string) (*gorm.DB, error) {
	databases, err := devops.LoadDBConfig(ctx)
	if err != nil {
		return nil, err
	}

	dbconfig := utils.Find(databases, func(db devops.DBEntry) bool {
		return db.Name == env
	})
	if dbconfig == nil {
		return nil, fmt.Errorf("database parameter for environment %q not found", env)
	}

	db, err := gorm.Open(mysql.Open(dbconfig.GetDSN(schema)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
