package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/internal/applicant/store"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/jwtx"
	"github.com/openawards/applicant/pkg/slogx"

	_ "github.com/openawards/applicant/api/applicant" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	LifecycleService *service.LifecycleService
	AdminGateway     *service.AdminGateway
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerApplications()
	r.registerReview()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			OpenAwards Applicant Service API
//	@version		0.1.0
//	@description	Judge application intake and approval lifecycle: submission, email verification,
//	@description	review decisions, and single-use signup links. Administrative endpoints require a
//	@description	bearer token carrying the applications:review or applications:read scope.
//
//	@contact.name				OpenAwards Team
//	@contact.url				https://github.com/openawards/applicant
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerApplications() {
	submitHandler := &SubmitHandler{LifecycleService: r.LifecycleService}
	verifyHandler := &VerifyHandler{LifecycleService: r.LifecycleService}
	statusHandler := &VerificationStatusHandler{LifecycleService: r.LifecycleService}
	completeHandler := &CompleteSignupHandler{LifecycleService: r.LifecycleService}

	// POST /applications - strict rate limit by IP (public mutation)
	r.Mux.Handle("POST /v1/applications",
		httpx.Chain(submitHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /applications/verify - strict rate limit by IP (token guessing)
	r.Mux.Handle("POST /v1/applications/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /applications/{email}/verification - lenient, the frontend polls this
	r.Mux.Handle("GET /v1/applications/{email}/verification",
		httpx.Chain(statusHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /applications/signup/complete - strict rate limit by IP (token redemption)
	r.Mux.Handle("POST /v1/applications/signup/complete",
		httpx.Chain(completeHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerReview() {
	reviewHandler := &ReviewHandler{AdminGateway: r.AdminGateway}
	signupLinkHandler := &SignupLinkHandler{AdminGateway: r.AdminGateway}
	historyHandler := &HistoryHandler{AdminGateway: r.AdminGateway}

	// Decision endpoints - verified JWT with the review scope, limited per subject
	r.Mux.Handle("POST /v1/applications/{id}/approve",
		httpx.Chain(http.HandlerFunc(reviewHandler.HandleApprove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeReview),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/applications/{id}/decline",
		httpx.Chain(http.HandlerFunc(reviewHandler.HandleDecline),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeReview),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	// POST /applications/signup-link - review scope, limited per subject
	r.Mux.Handle("POST /v1/applications/signup-link",
		httpx.Chain(signupLinkHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeReview),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		),
	)

	// GET /applications/{email}/history - read scope is enough
	r.Mux.Handle("GET /v1/applications/{email}/history",
		httpx.Chain(historyHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(service.ScopeRead, service.ScopeReview),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
