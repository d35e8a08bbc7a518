package persistence

import (
	"context"
	"database/sql"
	"time"

	"trucking-news/domain/model"
)

type PageCredentialRepository struct{ db *sql.DB }

func NewPageCredentialRepository(db *sql.DB) *PageCredentialRepository {
	return &PageCredentialRepository{db: db}
}

const credentialColumns = `id, page_id, page_name, access_token, app_id, app_secret, issued_at, expires_at, last_renewed_at, auto_renew_enabled, created_at, updated_at`

// Get returns the managed page credential, or nil when none is configured.
func (r *PageCredentialRepository) Get(ctx context.Context) (*model.PageCredential, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+credentialColumns+` FROM page_credentials ORDER BY id ASC LIMIT 1`)
	cred, err := scanCredential(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return cred, err
}

// Save upserts the credential keyed by page_id. All token window fields are
// written in one statement so a renewed token is never stored with a stale
// expiry.
func (r *PageCredentialRepository) Save(ctx context.Context, cred *model.PageCredential) error {
	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now
	q := `INSERT INTO page_credentials (page_id, page_name, access_token, app_id, app_secret, issued_at, expires_at, last_renewed_at, auto_renew_enabled, created_at, updated_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		  ON CONFLICT (page_id) DO UPDATE SET
			page_name=EXCLUDED.page_name,
			access_token=EXCLUDED.access_token,
			app_id=EXCLUDED.app_id,
			app_secret=EXCLUDED.app_secret,
			issued_at=EXCLUDED.issued_at,
			expires_at=EXCLUDED.expires_at,
			last_renewed_at=EXCLUDED.last_renewed_at,
			auto_renew_enabled=EXCLUDED.auto_renew_enabled,
			updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		cred.PageID, cred.PageName, cred.AccessToken, cred.AppID, cred.AppSecret,
		cred.IssuedAt, cred.ExpiresAt, cred.LastRenewedAt, cred.AutoRenewEnabled,
		cred.CreatedAt, cred.UpdatedAt)
	return err
}

func scanCredential(row rowScanner) (*model.PageCredential, error) {
	c := &model.PageCredential{}
	var pageName, appID, appSecret sql.NullString
	var issuedAt, expiresAt, lastRenewedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.PageID, &pageName, &c.AccessToken, &appID, &appSecret,
		&issuedAt, &expiresAt, &lastRenewedAt, &c.AutoRenewEnabled, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if pageName.Valid {
		v := pageName.String
		c.PageName = &v
	}
	if appID.Valid {
		c.AppID = appID.String
	}
	if appSecret.Valid {
		c.AppSecret = appSecret.String
	}
	if issuedAt.Valid {
		t := issuedAt.Time
		c.IssuedAt = &t
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		c.ExpiresAt = &t
	}
	if lastRenewedAt.Valid {
		t := lastRenewedAt.Time
		c.LastRenewedAt = &t
	}
	return c, nil
}
