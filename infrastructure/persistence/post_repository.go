package persistence

import (
	"context"
	"database/sql"
	"time"

	"trucking-news/domain/model"
)

type PostRepository struct{ db *sql.DB }

func NewPostRepository(db *sql.DB) *PostRepository { return &PostRepository{db: db} }

const postColumns = `id, title, content, url, image_url, facebook_post_id, status, source, created_at, posted_at, error_message`

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if post.Status == "" {
		post.Status = model.PostStatusPending
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, url, image_url, status, source, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		post.Title, post.Content, post.URL, post.ImageURL, post.Status, post.Source, post.CreatedAt)
	return row.Scan(&post.ID)
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id=$1`, id)
	return scanPost(row)
}

func (r *PostRepository) GetRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PostRepository) GetFirstPending(ctx context.Context) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE status='pending' ORDER BY created_at ASC LIMIT 1`)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *PostRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE title=$1 LIMIT 1`, title)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostRepository) MarkPosted(ctx context.Context, id int64, facebookPostID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET status='posted', facebook_post_id=$1, posted_at=$2, error_message=NULL WHERE id=$3`,
		facebookPostID, time.Now().UTC(), id)
	return err
}

func (r *PostRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET status='failed', error_message=$1 WHERE id=$2`, errorMessage, id)
	return err
}

func (r *PostRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE status=$1`, status)
	var n int
	err := row.Scan(&n)
	return n, err
}

func (r *PostRepository) HasPostedSince(ctx context.Context, since time.Time) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE status='posted' AND posted_at >= $1 LIMIT 1`, since)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	p := &model.Post{}
	var url, imageURL, fbPostID, source, errMsg sql.NullString
	var postedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &url, &imageURL, &fbPostID, &p.Status, &source, &p.CreatedAt, &postedAt, &errMsg); err != nil {
		return nil, err
	}
	if url.Valid {
		v := url.String
		p.URL = &v
	}
	if imageURL.Valid {
		v := imageURL.String
		p.ImageURL = &v
	}
	if fbPostID.Valid {
		v := fbPostID.String
		p.FacebookPostID = &v
	}
	if source.Valid {
		v := source.String
		p.Source = &v
	}
	if errMsg.Valid {
		v := errMsg.String
		p.ErrorMessage = &v
	}
	if postedAt.Valid {
		t := postedAt.Time
		p.PostedAt = &t
	}
	return p, nil
}
