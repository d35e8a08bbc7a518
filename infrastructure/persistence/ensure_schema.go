package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureSchema creates the application tables when they are missing and adds
// newer columns to existing installations. Safe to call at startup.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			content TEXT NOT NULL,
			url VARCHAR(1000),
			image_url VARCHAR(1000),
			facebook_post_id VARCHAR(100),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			source VARCHAR(200),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			posted_at TIMESTAMPTZ,
			error_message TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id BIGSERIAL PRIMARY KEY,
			posts_per_day INT NOT NULL DEFAULT 3,
			posting_hours VARCHAR(50) NOT NULL DEFAULT '9,14,19',
			enabled BOOLEAN NOT NULL DEFAULT true,
			openai_api_key TEXT,
			ai_enhancement_enabled BOOLEAN NOT NULL DEFAULT true,
			ai_post_style VARCHAR(50) NOT NULL DEFAULT 'informative',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS news_sources (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			url VARCHAR(1000) NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'rss',
			enabled BOOLEAN NOT NULL DEFAULT true,
			last_fetched TIMESTAMPTZ,
			total_articles_fetched INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS posting_logs (
			id BIGSERIAL PRIMARY KEY,
			post_id BIGINT REFERENCES posts(id) ON DELETE SET NULL,
			action VARCHAR(50) NOT NULL,
			message TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS page_credentials (
			id BIGSERIAL PRIMARY KEY,
			page_id VARCHAR(100) NOT NULL UNIQUE,
			page_name VARCHAR(200),
			access_token TEXT NOT NULL,
			app_id VARCHAR(100),
			app_secret TEXT,
			issued_at TIMESTAMPTZ,
			expires_at TIMESTAMPTZ,
			last_renewed_at TIMESTAMPTZ,
			auto_renew_enabled BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			user_name VARCHAR(100) NOT NULL UNIQUE,
			password VARCHAR(100) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensuring schema failed: %w", err)
		}
	}

	// Columns added after the first release; older installations get them here.
	checks := []struct {
		table  string
		column string
		ddl    string
	}{
		{"page_credentials", "issued_at", "ALTER TABLE page_credentials ADD COLUMN issued_at TIMESTAMPTZ"},
		{"page_credentials", "last_renewed_at", "ALTER TABLE page_credentials ADD COLUMN last_renewed_at TIMESTAMPTZ"},
		{"posts", "image_url", "ALTER TABLE posts ADD COLUMN image_url VARCHAR(1000)"},
	}
	for _, c := range checks {
		exists, err := columnExists(ctx, db, c.table, c.column)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := db.ExecContext(ctx, c.ddl); err != nil {
				return fmt.Errorf("adding column %s.%s failed: %w", c.table, c.column, err)
			}
		}
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT 1 FROM information_schema.columns WHERE table_name=$1 AND column_name=$2`, table, column)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
