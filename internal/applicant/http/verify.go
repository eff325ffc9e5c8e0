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

type VerifyHandler struct {
	LifecycleService *service.LifecycleService
}

// ServeHTTP godoc
//
//	@Summary		Verify Application Email
//	@Description	Consumes the single-use verification token from the emailed link and marks the application as verified.
//	@Description	A first-time verification also moves the application forward in the review pipeline.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		applicantsdk.VerifyEmailRequest	true	"Email and token from the verification link"
//	@Success		200		{object}	applicantsdk.Application		"the verified application"
//	@Failure		400		{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		410		{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/applications/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req applicantsdk.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
			Error:            applicantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	app, err := h.LifecycleService.VerifyEmail(ctx, req.Email, req.Token)
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
		case errors.Is(err, service.ErrAlreadyVerified):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeAlreadyVerified,
				ErrorDescription: "This application has already been verified",
			})
		case errors.Is(err, service.ErrTokenExpired):
			httpx.WriteJSON(w, http.StatusGone, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeTokenExpired,
				ErrorDescription: "The verification token has expired; submit a new application",
			})
		case errors.Is(err, service.ErrConflict):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeConflict,
				ErrorDescription: "The application was modified concurrently; try again",
			})
		default:
			log.Error("failed to verify application email", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to verify application email",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toApplication(app))
}
