package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ai-blog-generator/config"
	"ai-blog-generator/models"
)

// OpenPostgres opens a gorm connection and migrates the users and summaries
// tables. TranslateError makes unique violations surface as gorm.ErrDuplicatedKey.
func OpenPostgres(cfg config.PostgresConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.User{}, &models.Summary{}); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

// PingPostgres is used by the health check.
func PingPostgres(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
