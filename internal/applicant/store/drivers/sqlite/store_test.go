package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/internal/applicant/store"
	"github.com/openawards/applicant/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func newApplication(email string) domain.Application {
	now := time.Now().UTC()
	return domain.Application{
		ID:        idx.New().String(),
		Email:     email,
		FullName:  "Test Applicant",
		Status:    domain.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

func TestApplicationsCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := newApplication("a@example.com")
	// Attachment references are opaque payload: spaces and repeats must
	// survive storage untouched.
	app.Attachments = []string{"my resume.pdf", "refs.pdf", "refs.pdf"}
	hash := "argon2id$placeholder"
	issued := time.Now().UTC().Truncate(time.Second)
	app.VerificationTokenHash = &hash
	app.TokenIssuedAt = &issued

	require.NoError(t, st.Applications().Create(ctx, app))

	t.Run("round trips by id and email", func(t *testing.T) {
		byID, err := st.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		require.Equal(t, app.Email, byID.Email)
		require.Equal(t, []string{"my resume.pdf", "refs.pdf", "refs.pdf"}, byID.Attachments)
		require.NotNil(t, byID.VerificationTokenHash)
		require.Equal(t, hash, *byID.VerificationTokenHash)
		require.Nil(t, byID.SignupTokenHash)

		byEmail, err := st.Applications().GetByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.Equal(t, app.ID, byEmail.ID)
	})

	t.Run("attachments survive updates verbatim", func(t *testing.T) {
		current, err := st.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		current.Attachments = append(current.Attachments, "cover letter.docx")

		updated, err := st.Applications().Update(ctx, current)
		require.NoError(t, err)
		require.Equal(t, []string{"my resume.pdf", "refs.pdf", "refs.pdf", "cover letter.docx"}, updated.Attachments)

		stored, err := st.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		require.Equal(t, updated.Attachments, stored.Attachments)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := newApplication("a@example.com")
		require.ErrorIs(t, st.Applications().Create(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("unknown records return not found", func(t *testing.T) {
		_, err := st.Applications().GetByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = st.Applications().GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestApplicationsUpdateCompareAndSwap(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := newApplication("cas@example.com")
	require.NoError(t, st.Applications().Create(ctx, app))

	t.Run("bumps the version on success", func(t *testing.T) {
		app.Status = domain.StatusApproved
		updated, err := st.Applications().Update(ctx, app)
		require.NoError(t, err)
		require.EqualValues(t, 2, updated.Version)

		stored, err := st.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
		require.EqualValues(t, 2, stored.Version)
	})

	t.Run("stale version loses", func(t *testing.T) {
		stale := app // still carries version 1
		stale.Status = domain.StatusDeclined
		_, err := st.Applications().Update(ctx, stale)
		require.ErrorIs(t, err, store.ErrVersionConflict)

		// The stored state is untouched by the losing write.
		stored, err := st.Applications().GetByID(ctx, app.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, stored.Status)
	})

	t.Run("unknown id is not a conflict", func(t *testing.T) {
		ghost := newApplication("ghost@example.com")
		_, err := st.Applications().Update(ctx, ghost)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestClearExpiredVerificationTokens(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	hash := "argon2id$placeholder"
	old := time.Now().UTC().Add(-48 * time.Hour)
	fresh := time.Now().UTC()

	expired := newApplication("expired@example.com")
	expired.VerificationTokenHash = &hash
	expired.TokenIssuedAt = &old
	require.NoError(t, st.Applications().Create(ctx, expired))

	current := newApplication("current@example.com")
	current.VerificationTokenHash = &hash
	current.TokenIssuedAt = &fresh
	require.NoError(t, st.Applications().Create(ctx, current))

	verified := newApplication("verified@example.com")
	verified.Verified = true
	verified.VerificationTokenHash = &hash
	verified.TokenIssuedAt = &old
	require.NoError(t, st.Applications().Create(ctx, verified))

	cleared, err := st.Applications().ClearExpiredVerificationTokens(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, cleared)

	got, err := st.Applications().GetByEmail(ctx, "expired@example.com")
	require.NoError(t, err)
	require.Nil(t, got.VerificationTokenHash)
	require.Nil(t, got.TokenIssuedAt)

	got, err = st.Applications().GetByEmail(ctx, "current@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.VerificationTokenHash)

	// Verified records keep their history untouched.
	got, err = st.Applications().GetByEmail(ctx, "verified@example.com")
	require.NoError(t, err)
	require.NotNil(t, got.VerificationTokenHash)
}

func TestAuditAppendAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := newApplication("audit@example.com")
	require.NoError(t, st.Applications().Create(ctx, app))

	first := domain.AuditEntry{
		ID:             idx.New().String(),
		ApplicationID:  app.ID,
		Email:          app.Email,
		PreviousStatus: domain.StatusSubmitted,
		NewStatus:      domain.StatusPendingApproval,
		Actor:          domain.SystemActor,
		Notes:          "email verified",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, st.Audit().Append(ctx, first))

	second := domain.AuditEntry{
		ID:             idx.New().String(),
		ApplicationID:  app.ID,
		Email:          app.Email,
		PreviousStatus: domain.StatusPendingApproval,
		NewStatus:      domain.StatusApproved,
		Actor:          "ops@openawards",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, st.Audit().Append(ctx, second))

	entries, err := st.Audit().ListByEmail(ctx, app.Email)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, second.ID, entries[0].ID)
	require.Equal(t, first.ID, entries[1].ID)
	require.Equal(t, "email verified", entries[1].Notes)

	entries, err = st.Audit().ListByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	app := newApplication("tx@example.com")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Applications().Create(ctx, app); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.Applications().GetByEmail(ctx, "tx@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
