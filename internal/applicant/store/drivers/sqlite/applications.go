package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/internal/applicant/store"
)

type applicationsRepo struct {
	db dbtx
}

const applicationColumns = `id, email, full_name, phone, region, education, experience,
	motivation, attachments, status, verified, verification_token_hash,
	token_issued_at, signup_token_hash, created_at, updated_at, version`

func (r *applicationsRepo) Create(ctx context.Context, a domain.Application) error {
	attachments, err := marshalAttachments(a.Attachments)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, email, full_name, phone, region, education, experience,
			motivation, attachments, status, verified, verification_token_hash,
			token_issued_at, signup_token_hash, created_at, updated_at, version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Email,
		a.FullName,
		a.Phone,
		a.Region,
		a.Education,
		a.Experience,
		a.Motivation,
		attachments,
		string(a.Status),
		a.Verified,
		mapOptionalString(a.VerificationTokenHash),
		mapOptionalTime(a.TokenIssuedAt),
		mapOptionalString(a.SignupTokenHash),
		a.CreatedAt,
		a.UpdatedAt,
		a.Version,
	)
	return mapConstraint(err)
}

func (r *applicationsRepo) GetByID(ctx context.Context, id string) (domain.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	return scanApplication(row)
}

func (r *applicationsRepo) GetByEmail(ctx context.Context, email string) (domain.Application, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE email = ?`, email)
	return scanApplication(row)
}

// Update is a compare-and-swap on the version column. Zero rows affected
// means either a stale version or a missing record; the follow-up existence
// check disambiguates.
func (r *applicationsRepo) Update(ctx context.Context, a domain.Application) (domain.Application, error) {
	now := time.Now().UTC()

	attachments, err := marshalAttachments(a.Attachments)
	if err != nil {
		return domain.Application{}, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET
			full_name = ?, phone = ?, region = ?, education = ?, experience = ?,
			motivation = ?, attachments = ?, status = ?, verified = ?,
			verification_token_hash = ?, token_issued_at = ?, signup_token_hash = ?,
			updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		a.FullName,
		a.Phone,
		a.Region,
		a.Education,
		a.Experience,
		a.Motivation,
		attachments,
		string(a.Status),
		a.Verified,
		mapOptionalString(a.VerificationTokenHash),
		mapOptionalTime(a.TokenIssuedAt),
		mapOptionalString(a.SignupTokenHash),
		now,
		a.ID,
		a.Version,
	)
	if err != nil {
		return domain.Application{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Application{}, err
	}
	if affected == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM applications WHERE id = ?`, a.ID).Scan(&exists)
		if err != nil {
			return domain.Application{}, err
		}
		if exists == 0 {
			return domain.Application{}, store.ErrNotFound
		}
		return domain.Application{}, store.ErrVersionConflict
	}

	a.Version++
	a.UpdatedAt = now
	return a, nil
}

func (r *applicationsRepo) ClearExpiredVerificationTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications SET
			verification_token_hash = NULL,
			token_issued_at = NULL,
			updated_at = ?,
			version = version + 1
		WHERE verified = 0
		  AND verification_token_hash IS NOT NULL
		  AND token_issued_at < ?`,
		time.Now().UTC(), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanApplication(row *sql.Row) (domain.Application, error) {
	var (
		a           domain.Application
		status      string
		attachments string
		tokenHash   sql.NullString
		issuedAt    sql.NullTime
		signupHash  sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.FullName,
		&a.Phone,
		&a.Region,
		&a.Education,
		&a.Experience,
		&a.Motivation,
		&attachments,
		&status,
		&a.Verified,
		&tokenHash,
		&issuedAt,
		&signupHash,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.Version,
	)
	if err != nil {
		return domain.Application{}, mapNotFound(err)
	}

	a.Status = domain.Status(status)
	a.Attachments, err = unmarshalAttachments(attachments)
	if err != nil {
		return domain.Application{}, err
	}
	a.VerificationTokenHash = mapNullString(tokenHash)
	a.TokenIssuedAt = mapNullTime(issuedAt)
	a.SignupTokenHash = mapNullString(signupHash)
	return a, nil
}
