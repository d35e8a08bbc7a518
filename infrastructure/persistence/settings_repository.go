package persistence

import (
	"context"
	"database/sql"
	"time"

	"trucking-news/domain/model"
)

type SettingsRepository struct{ db *sql.DB }

func NewSettingsRepository(db *sql.DB) *SettingsRepository { return &SettingsRepository{db: db} }

// Get returns the singleton settings row, creating it with defaults when the
// table is empty.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, posts_per_day, posting_hours, enabled, openai_api_key, ai_enhancement_enabled, ai_post_style, last_updated
		 FROM settings ORDER BY id ASC LIMIT 1`)
	s := &model.Settings{}
	var apiKey sql.NullString
	err := row.Scan(&s.ID, &s.PostsPerDay, &s.PostingHours, &s.Enabled, &apiKey, &s.AIEnhancementEnabled, &s.AIPostStyle, &s.LastUpdated)
	if err == sql.ErrNoRows {
		return r.createDefault(ctx)
	}
	if err != nil {
		return nil, err
	}
	if apiKey.Valid {
		s.OpenAIAPIKey = apiKey.String
	}
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *model.Settings) error {
	s.LastUpdated = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE settings SET posts_per_day=$1, posting_hours=$2, enabled=$3, openai_api_key=$4, ai_enhancement_enabled=$5, ai_post_style=$6, last_updated=$7 WHERE id=$8`,
		s.PostsPerDay, s.PostingHours, s.Enabled, s.OpenAIAPIKey, s.AIEnhancementEnabled, s.AIPostStyle, s.LastUpdated, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		row := r.db.QueryRowContext(ctx,
			`INSERT INTO settings (posts_per_day, posting_hours, enabled, openai_api_key, ai_enhancement_enabled, ai_post_style, last_updated)
			 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
			s.PostsPerDay, s.PostingHours, s.Enabled, s.OpenAIAPIKey, s.AIEnhancementEnabled, s.AIPostStyle, s.LastUpdated)
		return row.Scan(&s.ID)
	}
	return nil
}

func (r *SettingsRepository) createDefault(ctx context.Context) (*model.Settings, error) {
	s := &model.Settings{
		PostsPerDay:          3,
		PostingHours:         "9,14,19",
		Enabled:              true,
		AIEnhancementEnabled: true,
		AIPostStyle:          model.StyleInformative,
		LastUpdated:          time.Now().UTC(),
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO settings (posts_per_day, posting_hours, enabled, ai_enhancement_enabled, ai_post_style, last_updated)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		s.PostsPerDay, s.PostingHours, s.Enabled, s.AIEnhancementEnabled, s.AIPostStyle, s.LastUpdated)
	if err := row.Scan(&s.ID); err != nil {
		return nil, err
	}
	return s, nil
}
