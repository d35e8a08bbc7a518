package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"trucking-news/infrastructure/configuration"

	_ "github.com/lib/pq"
)

// NewPostgreSQLDB opens the application database using the configured
// credentials. sslmode is disabled for local development; production
// deployments front the database with a private network.
func NewPostgreSQLDB() (*sql.DB, error) {
	cfg := configuration.C.Database.Psql
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
