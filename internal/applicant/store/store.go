package store

import (
	"context"
	"errors"
	"time"

	"github.com/openawards/applicant/internal/applicant/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrVersionConflict reports a lost compare-and-swap: the stored record
	// version no longer matches the version the caller read. Callers retry
	// against fresh state a bounded number of times.
	ErrVersionConflict = errors.New("store: version conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Applications() Applications
	Audit() Audit

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Applications interface {
	// Create inserts a new application (id is provided by app via ULID).
	// Fails with ErrAlreadyExists when the email already has a record.
	Create(ctx context.Context, a domain.Application) error

	// GetByID returns an application by id.
	GetByID(ctx context.Context, id string) (domain.Application, error)

	// GetByEmail returns an application by its unique email.
	GetByEmail(ctx context.Context, email string) (domain.Application, error)

	// Update writes a as the new state iff the stored version still equals
	// a.Version (compare-and-swap). On success the returned record carries
	// the bumped version and updated_at. Fails with ErrVersionConflict when
	// the stored version moved on, ErrNotFound when the id is unknown.
	Update(ctx context.Context, a domain.Application) (domain.Application, error)

	// ClearExpiredVerificationTokens nulls out verification token hashes of
	// unverified records whose token was issued before cutoff. Returns the
	// number of affected rows. Records themselves are never deleted.
	ClearExpiredVerificationTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

type Audit interface {
	// Append inserts a status transition entry. Pure insert; the trail is
	// never mutated or deleted.
	Append(ctx context.Context, e domain.AuditEntry) error

	// ListByEmail returns all entries for an email, most recent first.
	ListByEmail(ctx context.Context, email string) ([]domain.AuditEntry, error)
}
