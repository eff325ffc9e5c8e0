package applicant_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/openawards/applicant/internal/applicant/http"
	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/internal/applicant/store/drivers/sqlite"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for applicant service end-to-end tests. The service runs
 * in-process behind httptest with a file-backed sqlite database, and the
 * SDK client talks to it over real HTTP.
 */

const (
	adminJWTSecret = "e2e-admin-secret"
	jwtIssuer      = "openawards-platform"
)

func init() {
	// Relax rate limits before the router captures them; the tests make
	// many rapid requests that would otherwise hit the production limits.
	relaxed := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	httpx.StrictLimit = relaxed
	httpx.ModerateLimit = relaxed
	httpx.LenientLimit = relaxed
}

type testEnv struct {
	Client        *applicantsdk.Client
	Notifications chan service.Notification
}

type channelGateway struct {
	ch chan service.Notification
}

func (g *channelGateway) Send(_ context.Context, n service.Notification) error {
	g.ch <- n
	return nil
}

func newTestEnv(t *testing.T, autoApprove bool) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
		filepath.Join(t.TempDir(), "applicant.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	notifications := make(chan service.Notification, 32)
	dispatcher := service.NewDispatcher(&channelGateway{ch: notifications}, logger, 32)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	lifecycle := &service.LifecycleService{
		Store:               st,
		Tokens:              &service.TokenService{},
		Notifications:       dispatcher,
		BaseURL:             "https://awards.example",
		AutoApproveOnVerify: autoApprove,
	}

	router := httpapi.NewRouter(
		jwtx.NewHS256Verifier([]byte(adminJWTSecret), jwtIssuer),
		"e2e",
		st,
		logger,
	)
	router.LifecycleService = lifecycle
	router.AdminGateway = &service.AdminGateway{Lifecycle: lifecycle}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		Client:        applicantsdk.NewClient(server.URL),
		Notifications: notifications,
	}
}

// adminToken mints an operator bearer token with the given scopes.
func adminToken(t *testing.T, subject string, scopes ...string) string {
	t.Helper()
	token, err := jwtx.SignHS256([]byte(adminJWTSecret), jwtIssuer, subject, scopes, time.Hour)
	require.NoError(t, err)
	return token
}

func (env *testEnv) waitNotification(t *testing.T) service.Notification {
	t.Helper()
	select {
	case n := <-env.Notifications:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return service.Notification{}
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

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *applicantsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	if code != "" {
		require.Equal(t, code, apiErr.Code)
	}
}
