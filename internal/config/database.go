package config

import (
	"fmt"
	"log"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"alfredoptarigan/resume-ats/internal/models"
)

// migrated lists every table the service owns, in creation order.
func migrated() []schema.Tabler {
	return []schema.Tabler{
		&models.Resume{},
		&models.Job{},
		&models.Analysis{},
	}
}

func gormLogLevel(env string) logger.LogLevel {
	if env == "development" {
		return logger.Info
	}
	return logger.Silent
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.Server.Env)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Println("✅ Database connected successfully")

	tables := migrated()
	dst := make([]interface{}, len(tables))
	names := make([]string, len(tables))
	for i, t := range tables {
		dst[i] = t
		names[i] = t.TableName()
	}
	if err := db.AutoMigrate(dst...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("✅ database migrated", "tables", names,
		"max_open_conns", cfg.Database.MaxOpenConns, "max_idle_conns", cfg.Database.MaxIdleConns)
	return db, nil
}
