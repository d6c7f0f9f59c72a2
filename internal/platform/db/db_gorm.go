// Package db opens the relational store connection.
package db

import (
	"fmt"
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	companyentity "company_backend/internal/feature/company/domain/entity"
	identityadapters "company_backend/internal/feature/identity/adapters"
	identityentity "company_backend/internal/feature/identity/domain/entity"
	"company_backend/internal/platform/config"
)

// Opener abstracts gorm.Open so connection retry logic can be tested
// without a real database.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN assembles the Postgres DSN from the service configuration.
func BuildDSN(cfg config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

// ConnectWithRetry keeps dialing until the store answers or the timeout
// elapses, so the service survives a database that is still booting.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

func gormOpen(dsn string) (*gorm.DB, error) {
	// TranslateError is on so unique index violations surface as
	// gorm.ErrDuplicatedKey across drivers.
	return gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB connects to Postgres, retrying for up to a minute, and runs the
// schema migrations when enabled.
func OpenDB(cfg config.Config) *gorm.DB {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, gormOpen)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&identityentity.User{},
			&companyentity.CompanyProfile{},
			&identityadapters.VerificationTokenModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
