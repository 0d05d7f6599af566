// Package database opens the gorm handle shared by the repositories.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-blog-api/internal/infrastructure/config"
	"go-blog-api/internal/infrastructure/logger"
)

const pingTimeout = 5 * time.Second

// Postgres wraps DB connectivity.
type Postgres struct {
	DB *gorm.DB
}

// Connect opens the pool described by cfg and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*Postgres, error) {
	if cfg.URL == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.URL), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

// GormConfig is the configuration every handle in this service is opened with.
func GormConfig(log logger.Logger) *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 NewGormLogger(log, 200*time.Millisecond),
	}
}

// Migrate creates or alters the tables backing the given models.
func (p *Postgres) Migrate(ctx context.Context, models ...any) error {
	if err := p.DB.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
