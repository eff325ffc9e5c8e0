package sqlite

import (
	"context"

	"github.com/openawards/applicant/internal/applicant/domain"
)

type auditRepo struct {
	db dbtx
}

func (r *auditRepo) Append(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO status_audit (
			id, application_id, email, previous_status, new_status, actor,
			notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.ApplicationID,
		e.Email,
		string(e.PreviousStatus),
		string(e.NewStatus),
		e.Actor,
		e.Notes,
		e.CreatedAt,
	)
	return err
}

// ListByEmail orders by the ULID primary key, which sorts by creation time.
func (r *auditRepo) ListByEmail(ctx context.Context, email string) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, application_id, email, previous_status, new_status, actor,
			notes, created_at
		FROM status_audit
		WHERE email = ?
		ORDER BY id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var (
			e    domain.AuditEntry
			prev string
			next string
		)
		if err := rows.Scan(
			&e.ID,
			&e.ApplicationID,
			&e.Email,
			&prev,
			&next,
			&e.Actor,
			&e.Notes,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.PreviousStatus = domain.Status(prev)
		e.NewStatus = domain.Status(next)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
