package service

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/internal/applicant/store"
	"github.com/openawards/applicant/internal/applicant/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// captureGateway forwards notifications into a channel so tests can
// recover the tokens embedded in the links.
type captureGateway struct {
	ch chan Notification
}

func (g *captureGateway) Send(_ context.Context, n Notification) error {
	g.ch <- n
	return nil
}

func newTestLifecycle(t *testing.T) (*LifecycleService, store.Store, chan Notification) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	notifications := make(chan Notification, 16)
	dispatcher := NewDispatcher(&captureGateway{ch: notifications}, discardLogger(), 16)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	svc := &LifecycleService{
		Store:               st,
		Tokens:              &TokenService{},
		Notifications:       dispatcher,
		BaseURL:             "https://awards.example",
		AutoApproveOnVerify: true,
	}
	return svc, st, notifications
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitNotification(t *testing.T, ch chan Notification) Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return Notification{}
	}
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func submitAndVerify(t *testing.T, svc *LifecycleService, notifications chan Notification, email string) domain.Application {
	t.Helper()

	_, err := svc.Submit(context.Background(), SubmitRequest{Email: email, FullName: "Sam Judge"})
	require.NoError(t, err)

	n := waitNotification(t, notifications)
	require.Equal(t, NotificationVerification, n.Kind)

	app, err := svc.VerifyEmail(context.Background(), email, tokenFromLink(t, n.Data["verify_url"]))
	require.NoError(t, err)
	return app
}

func TestSubmit(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	ctx := context.Background()

	t.Run("creates a submitted application and queues verification", func(t *testing.T) {
		app, err := svc.Submit(ctx, SubmitRequest{
			Email:    "Alice@Example.COM ",
			FullName: " Alice Chen ",
			Region:   "Sydney",
		})
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", app.Email)
		require.Equal(t, "Alice Chen", app.FullName)
		require.Equal(t, domain.StatusSubmitted, app.Status)
		require.False(t, app.Verified)
		require.NotNil(t, app.VerificationTokenHash)
		require.NotNil(t, app.TokenIssuedAt)
		require.EqualValues(t, 1, app.Version)

		n := waitNotification(t, notifications)
		require.Equal(t, NotificationVerification, n.Kind)
		require.Equal(t, "alice@example.com", n.Email)
		require.Contains(t, n.Data["verify_url"], "https://awards.example/verify?")

		// The raw token is never stored.
		stored, err := st.Applications().GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotEqual(t, tokenFromLink(t, n.Data["verify_url"]), *stored.VerificationTokenHash)
	})

	t.Run("rejects a second application for the same email", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitRequest{Email: "alice@example.com", FullName: "Alice Again"})
		require.ErrorIs(t, err, ErrDuplicateApplicant)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitRequest{Email: "", FullName: "No Email"})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Submit(ctx, SubmitRequest{Email: "not-an-email", FullName: "Bad Email"})
		require.ErrorIs(t, err, ErrValidation)

		_, err = svc.Submit(ctx, SubmitRequest{Email: "new@example.com", FullName: "   "})
		require.ErrorIs(t, err, ErrValidation)
	})

	// No audit entry exists until the first transition.
	entries, err := st.Audit().ListByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestVerifyEmailAutoApprove(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "bob@example.com")
	require.True(t, app.Verified)
	require.Equal(t, domain.StatusApproved, app.Status)
	require.Nil(t, app.VerificationTokenHash)
	require.Nil(t, app.TokenIssuedAt)

	n := waitNotification(t, notifications)
	require.Equal(t, NotificationApproval, n.Kind)

	entries, err := st.Audit().ListByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.StatusSubmitted, entries[0].PreviousStatus)
	require.Equal(t, domain.StatusApproved, entries[0].NewStatus)
	require.Equal(t, domain.SystemActor, entries[0].Actor)
}

func TestVerifyEmailManualReview(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false

	app := submitAndVerify(t, svc, notifications, "carol@example.com")
	require.True(t, app.Verified)
	require.Equal(t, domain.StatusPendingApproval, app.Status)

	// No approval notification while the application awaits review.
	select {
	case n := <-notifications:
		t.Fatalf("unexpected notification: %v", n)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestVerifyEmailFailureModes(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitRequest{Email: "dan@example.com", FullName: "Dan Ng"})
	require.NoError(t, err)
	n := waitNotification(t, notifications)
	token := tokenFromLink(t, n.Data["verify_url"])

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, "nobody@example.com", token)
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, err := svc.VerifyEmail(ctx, "dan@example.com", "definitely-not-the-token")
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		app, err := st.Applications().GetByEmail(ctx, "dan@example.com")
		require.NoError(t, err)
		stale := time.Now().UTC().Add(-25 * time.Hour)
		app.TokenIssuedAt = &stale
		_, err = st.Applications().Update(ctx, app)
		require.NoError(t, err)

		_, err = svc.VerifyEmail(ctx, "dan@example.com", token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token cleared by housekeeping", func(t *testing.T) {
		app, err := st.Applications().GetByEmail(ctx, "dan@example.com")
		require.NoError(t, err)
		app.VerificationTokenHash = nil
		_, err = st.Applications().Update(ctx, app)
		require.NoError(t, err)

		_, err = svc.VerifyEmail(ctx, "dan@example.com", token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitRequest{Email: "erin@example.com", FullName: "Erin Oduya"})
	require.NoError(t, err)
	n := waitNotification(t, notifications)
	token := tokenFromLink(t, n.Data["verify_url"])

	_, err = svc.VerifyEmail(ctx, "erin@example.com", token)
	require.NoError(t, err)

	_, err = svc.VerifyEmail(ctx, "erin@example.com", token)
	require.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestReviewDecisions(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "frank@example.com")
	require.Equal(t, domain.StatusPendingApproval, app.Status)

	t.Run("approve a pending application", func(t *testing.T) {
		res, err := svc.Approve(ctx, app.ID, "admin@openawards", "strong portfolio")
		require.NoError(t, err)
		require.True(t, res.Changed)
		require.Equal(t, domain.StatusPendingApproval, res.Previous)
		require.Equal(t, domain.StatusApproved, res.Application.Status)

		n := waitNotification(t, notifications)
		require.Equal(t, NotificationApproval, n.Kind)
	})

	t.Run("repeating the decision is a no-op", func(t *testing.T) {
		res, err := svc.Approve(ctx, app.ID, "admin@openawards", "retry")
		require.NoError(t, err)
		require.False(t, res.Changed)
		require.Equal(t, domain.StatusApproved, res.Application.Status)

		// No duplicate audit entry for the retry.
		entries, err := st.Audit().ListByEmail(ctx, "frank@example.com")
		require.NoError(t, err)
		require.Len(t, entries, 2) // verified + approved
	})

	t.Run("decline after approval is allowed and audited", func(t *testing.T) {
		res, err := svc.Decline(ctx, app.ID, "admin@openawards", "withdrew")
		require.NoError(t, err)
		require.True(t, res.Changed)
		require.Equal(t, domain.StatusDeclined, res.Application.Status)

		n := waitNotification(t, notifications)
		require.Equal(t, NotificationDecline, n.Kind)

		entries, err := st.Audit().ListByEmail(ctx, "frank@example.com")
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, "withdrew", entries[0].Notes)
		require.Equal(t, "admin@openawards", entries[0].Actor)
	})

	t.Run("declined is terminal", func(t *testing.T) {
		_, err := svc.Approve(ctx, app.ID, "admin@openawards", "reopen attempt")
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := svc.Approve(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV", "admin@openawards", "")
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})
}

func TestSignupLinkFlow(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	ctx := context.Background()

	t.Run("unverified applications are invisible", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitRequest{Email: "gina@example.com", FullName: "Gina Park"})
		require.NoError(t, err)
		waitNotification(t, notifications)

		_, err = svc.IssueSignupLink(ctx, "gina@example.com")
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})

	app := submitAndVerify(t, svc, notifications, "henry@example.com")
	require.Equal(t, domain.StatusApproved, app.Status)
	waitNotification(t, notifications) // approval

	link, err := svc.IssueSignupLink(ctx, "henry@example.com")
	require.NoError(t, err)
	require.Contains(t, link, "https://awards.example/signup?")
	token := tokenFromLink(t, link)

	t.Run("a fresh link supersedes the previous token", func(t *testing.T) {
		newer, err := svc.IssueSignupLink(ctx, "henry@example.com")
		require.NoError(t, err)

		_, err = svc.ConsumeSignupLink(ctx, "henry@example.com", token)
		require.ErrorIs(t, err, ErrApplicationNotFound)

		token = tokenFromLink(t, newer)
	})

	t.Run("redeeming moves the application to its final state", func(t *testing.T) {
		created, err := svc.ConsumeSignupLink(ctx, "henry@example.com", token)
		require.NoError(t, err)
		require.Equal(t, domain.StatusAccountCreated, created.Status)
		require.Nil(t, created.SignupTokenHash)
	})

	t.Run("the link is single-use", func(t *testing.T) {
		_, err := svc.ConsumeSignupLink(ctx, "henry@example.com", token)
		require.ErrorIs(t, err, ErrApplicationNotFound)
	})
}

func TestConsumeSignupLinkRequiresApproval(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "iris@example.com")
	require.Equal(t, domain.StatusPendingApproval, app.Status)

	link, err := svc.IssueSignupLink(ctx, "iris@example.com")
	require.NoError(t, err)

	_, err = svc.ConsumeSignupLink(ctx, "iris@example.com", tokenFromLink(t, link))
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckVerification(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	ctx := context.Background()

	t.Run("unknown email is not an error", func(t *testing.T) {
		state, err := svc.CheckVerification(ctx, "ghost@example.com")
		require.NoError(t, err)
		require.False(t, state.Exists)
		require.False(t, state.Verified)
	})

	_, err := svc.Submit(ctx, SubmitRequest{Email: "jo@example.com", FullName: "Jo Li"})
	require.NoError(t, err)
	waitNotification(t, notifications)

	state, err := svc.CheckVerification(ctx, "jo@example.com")
	require.NoError(t, err)
	require.True(t, state.Exists)
	require.False(t, state.Verified)
	require.Equal(t, domain.StatusSubmitted, state.Status)
}

func TestGetHistoryOrdering(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "kim@example.com")

	_, err := svc.Approve(ctx, app.ID, "admin@openawards", "")
	require.NoError(t, err)
	waitNotification(t, notifications)

	got, entries, err := svc.GetHistory(ctx, "kim@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, got.Status)
	require.Len(t, entries, 2)

	// Most recent first.
	require.Equal(t, domain.StatusApproved, entries[0].NewStatus)
	require.Equal(t, domain.StatusPendingApproval, entries[1].NewStatus)

	_, _, err = svc.GetHistory(ctx, "ghost@example.com")
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

// flakyStore fails WithTx with a version conflict a fixed number of times
// before delegating, to exercise the retry loop.
type flakyStore struct {
	store.Store
	failures int
}

func (f *flakyStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	if f.failures > 0 {
		f.failures--
		return store.ErrVersionConflict
	}
	return f.Store.WithTx(ctx, fn)
}

func TestReviewRetriesOnVersionConflict(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "lee@example.com")

	t.Run("recovers within the retry budget", func(t *testing.T) {
		svc.Store = &flakyStore{Store: st, failures: 2}
		res, err := svc.Approve(ctx, app.ID, "admin@openawards", "")
		require.NoError(t, err)
		require.True(t, res.Changed)
		waitNotification(t, notifications)
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		svc.Store = &flakyStore{Store: st, failures: conflictRetries}
		_, err := svc.Decline(ctx, app.ID, "admin@openawards", "")
		require.ErrorIs(t, err, ErrConflict)
	})

	svc.Store = st
}

// TestConcurrentApproveCommitsOnce races two approvals for the same
// application: exactly one may win the transition, and exactly one audit
// entry may record it.
func TestConcurrentApproveCommitsOnce(t *testing.T) {
	svc, st, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "max@example.com")
	require.Equal(t, domain.StatusPendingApproval, app.Status)

	type outcome struct {
		res ReviewResult
		err error
	}

	outcomes := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Approve(ctx, app.ID, "admin@openawards", "")
			outcomes <- outcome{res: res, err: err}
		}()
	}
	wg.Wait()
	close(outcomes)

	changed := 0
	for o := range outcomes {
		require.NoError(t, o.err)
		require.Equal(t, domain.StatusApproved, o.res.Application.Status)
		if o.res.Changed {
			changed++
		}
	}
	require.Equal(t, 1, changed)

	// One transition, one audit entry, one notification.
	entries, err := st.Audit().ListByEmail(ctx, "max@example.com")
	require.NoError(t, err)
	require.Len(t, entries, 2) // verified + approved
	require.Equal(t, domain.StatusApproved, entries[0].NewStatus)

	n := waitNotification(t, notifications)
	require.Equal(t, NotificationApproval, n.Kind)

	select {
	case n := <-notifications:
		t.Fatalf("unexpected second notification: %v", n)
	case <-time.After(100 * time.Millisecond):
	}
}
