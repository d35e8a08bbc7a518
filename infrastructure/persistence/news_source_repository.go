package persistence

import (
	"context"
	"database/sql"
	"time"

	"trucking-news/domain/model"
)

type NewsSourceRepository struct{ db *sql.DB }

func NewNewsSourceRepository(db *sql.DB) *NewsSourceRepository {
	return &NewsSourceRepository{db: db}
}

const sourceColumns = `id, name, url, type, enabled, last_fetched, total_articles_fetched, created_at`

func (r *NewsSourceRepository) Create(ctx context.Context, source *model.NewsSource) error {
	if source.CreatedAt.IsZero() {
		source.CreatedAt = time.Now().UTC()
	}
	if source.Type == "" {
		source.Type = model.SourceTypeRSS
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO news_sources (name, url, type, enabled, created_at) VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		source.Name, source.URL, source.Type, source.Enabled, source.CreatedAt)
	return row.Scan(&source.ID)
}

func (r *NewsSourceRepository) GetByID(ctx context.Context, id int64) (*model.NewsSource, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sourceColumns+` FROM news_sources WHERE id=$1`, id)
	return scanSource(row)
}

func (r *NewsSourceRepository) GetAll(ctx context.Context) ([]*model.NewsSource, error) {
	return r.query(ctx, `SELECT `+sourceColumns+` FROM news_sources ORDER BY id ASC`)
}

func (r *NewsSourceRepository) GetEnabled(ctx context.Context) ([]*model.NewsSource, error) {
	return r.query(ctx, `SELECT `+sourceColumns+` FROM news_sources WHERE enabled=true ORDER BY id ASC`)
}

func (r *NewsSourceRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE news_sources SET enabled=$1 WHERE id=$2`, enabled, id)
	return err
}

func (r *NewsSourceRepository) RecordFetch(ctx context.Context, id int64, fetchedAt time.Time, articleCount int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE news_sources SET last_fetched=$1, total_articles_fetched=total_articles_fetched+$2 WHERE id=$3`,
		fetchedAt, articleCount, id)
	return err
}

func (r *NewsSourceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM news_sources WHERE id=$1`, id)
	return err
}

func (r *NewsSourceRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_sources`).Scan(&n)
	return n, err
}

func (r *NewsSourceRepository) query(ctx context.Context, q string) ([]*model.NewsSource, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.NewsSource
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSource(row rowScanner) (*model.NewsSource, error) {
	s := &model.NewsSource{}
	var lastFetched sql.NullTime
	if err := row.Scan(&s.ID, &s.Name, &s.URL, &s.Type, &s.Enabled, &lastFetched, &s.TotalArticlesFetched, &s.CreatedAt); err != nil {
		return nil, err
	}
	if lastFetched.Valid {
		t := lastFetched.Time
		s.LastFetched = &t
	}
	return s, nil
}
