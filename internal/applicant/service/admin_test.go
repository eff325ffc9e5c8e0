package service

import (
	"context"
	"testing"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/stretchr/testify/require"
)

func TestAdminGatewayEnforcesScopes(t *testing.T) {
	svc, _, notifications := newTestLifecycle(t)
	svc.AutoApproveOnVerify = false
	ctx := context.Background()

	app := submitAndVerify(t, svc, notifications, "mia@example.com")

	gateway := &AdminGateway{Lifecycle: svc}

	reviewer := domain.Actor{Subject: "ops@openawards", Scopes: []string{ScopeReview, ScopeRead}}
	reader := domain.Actor{Subject: "viewer@openawards", Scopes: []string{ScopeRead}}
	nobody := domain.Actor{Subject: "intern@openawards"}

	t.Run("approve requires the review scope", func(t *testing.T) {
		_, err := gateway.Approve(ctx, reader, app.ID, "")
		require.ErrorIs(t, err, ErrUnauthorized)

		res, err := gateway.Approve(ctx, reviewer, app.ID, "looks good")
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, res.Application.Status)
		waitNotification(t, notifications)
	})

	t.Run("decline requires the review scope", func(t *testing.T) {
		_, err := gateway.Decline(ctx, nobody, app.ID, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("history requires the read scope", func(t *testing.T) {
		_, _, err := gateway.GetHistory(ctx, nobody, "mia@example.com")
		require.ErrorIs(t, err, ErrUnauthorized)

		_, entries, err := gateway.GetHistory(ctx, reader, "mia@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, entries)
	})

	t.Run("signup links require the review scope", func(t *testing.T) {
		_, err := gateway.IssueSignupLink(ctx, reader, "mia@example.com")
		require.ErrorIs(t, err, ErrUnauthorized)

		link, err := gateway.IssueSignupLink(ctx, reviewer, "mia@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, link)
	})

	t.Run("audit records the acting subject", func(t *testing.T) {
		_, entries, err := gateway.GetHistory(ctx, reviewer, "mia@example.com")
		require.NoError(t, err)
		require.Equal(t, "ops@openawards", entries[0].Actor)
	})
}
