package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/slogx"
)

// SignupLinkHandler mints single-use signup links for verified applications.
type SignupLinkHandler struct {
	AdminGateway *service.AdminGateway
}

// ServeHTTP godoc
//
//	@Summary		Issue Signup Link
//	@Description	Mints a single-use signup link for a verified application. Issuing again supersedes any earlier link.
//	@Tags			Review
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with applications:review scope"
//	@Param			request			body		applicantsdk.SignupLinkRequest	true	"Applicant email"
//	@Success		200				{object}	applicantsdk.SignupLinkResponse	"signup_url"
//	@Failure		400				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{string}	string							"insufficient_scope (from the scope middleware)"
//	@Failure		404				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/applications/signup-link [post].
func (h *SignupLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req applicantsdk.SignupLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
			Error:            applicantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	link, err := h.AdminGateway.IssueSignupLink(ctx, actorFromContext(ctx), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrUnauthorized):
			httpx.WriteJSON(w, http.StatusUnauthorized, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInsufficientScope,
				ErrorDescription: "Caller lacks the applications:review scope",
			})
		case errors.Is(err, service.ErrApplicationNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeNotFound,
				ErrorDescription: "No verified application exists for this email",
			})
		case errors.Is(err, service.ErrConflict):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeConflict,
				ErrorDescription: "The application was modified concurrently; try again",
			})
		default:
			log.Error("failed to issue signup link", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to issue signup link",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, applicantsdk.SignupLinkResponse{SignupURL: link})
}

// CompleteSignupHandler redeems signup tokens, the final lifecycle step.
type CompleteSignupHandler struct {
	LifecycleService *service.LifecycleService
}

// ServeHTTP godoc
//
//	@Summary		Complete Signup
//	@Description	Redeems a single-use signup token and moves the approved application to its final AccountCreated state.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		applicantsdk.CompleteSignupRequest	true	"Email and token from the signup link"
//	@Success		200		{object}	applicantsdk.Application			"the finalised application"
//	@Failure		400		{object}	applicantsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	applicantsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	applicantsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	applicantsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/applications/signup/complete [post].
func (h *CompleteSignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req applicantsdk.CompleteSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
			Error:            applicantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	app, err := h.LifecycleService.ConsumeSignupLink(ctx, req.Email, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrApplicationNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeNotFound,
				ErrorDescription: "No application matches this email and token",
			})
		case errors.Is(err, service.ErrInvalidTransition):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidTransition,
				ErrorDescription: "The application has not been approved yet",
			})
		case errors.Is(err, service.ErrConflict):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeConflict,
				ErrorDescription: "The application was modified concurrently; try again",
			})
		default:
			log.Error("failed to complete signup", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to complete signup",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toApplication(app))
}
