package config

import (
	"crypto/tls"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"route_editor/internal/models"
)

// ConnConfig parses DatabaseURL and applies the TLS policy.
// With SSLInsecure set the server certificate is not verified, for hosted
// databases that present certificates the local trust store does not know.
func ConnConfig(cfg *Config) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	if cfg.SSLInsecure {
		skipCertVerification(connCfg.TLSConfig)
		for _, fb := range connCfg.Fallbacks {
			skipCertVerification(fb.TLSConfig)
		}
	}
	return connCfg, nil
}

func skipCertVerification(tlsCfg *tls.Config) {
	if tlsCfg == nil {
		return
	}
	tlsCfg.InsecureSkipVerify = true
	tlsCfg.VerifyPeerCertificate = nil
	tlsCfg.VerifyConnection = nil
}

// InitDB opens the pooled connection used for the lifetime of the process.
// The pool itself comes from database/sql; GORM only wraps it.
func InitDB(cfg *Config, log gormlogger.Interface) (*gorm.DB, error) {
	connCfg, err := ConnConfig(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDB(*connCfg)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: log})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis;").Error; err != nil {
			return nil, fmt.Errorf("enable postgis: %w", err)
		}
		if err := db.Table(cfg.RoutesTable).AutoMigrate(&models.Route{}); err != nil {
			return nil, fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	return db, nil
}
