package persistence

import (
	"context"
	"database/sql"
	"time"

	"trucking-news/domain/model"
)

type PostingLogRepository struct{ db *sql.DB }

func NewPostingLogRepository(db *sql.DB) *PostingLogRepository {
	return &PostingLogRepository{db: db}
}

func (r *PostingLogRepository) Append(ctx context.Context, log *model.PostingLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO posting_logs (post_id, action, message, timestamp) VALUES ($1,$2,$3,$4) RETURNING id`,
		log.PostID, log.Action, log.Message, log.Timestamp)
	return row.Scan(&log.ID)
}

func (r *PostingLogRepository) GetRecent(ctx context.Context, limit int) ([]*model.PostingLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, post_id, action, message, timestamp FROM posting_logs ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.PostingLog
	for rows.Next() {
		l := &model.PostingLog{}
		var postID sql.NullInt64
		var message sql.NullString
		if err := rows.Scan(&l.ID, &postID, &l.Action, &message, &l.Timestamp); err != nil {
			return nil, err
		}
		if postID.Valid {
			v := postID.Int64
			l.PostID = &v
		}
		if message.Valid {
			v := message.String
			l.Message = &v
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
