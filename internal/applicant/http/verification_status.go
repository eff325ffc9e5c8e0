package http

import (
	"errors"
	"net/http"

	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/slogx"
)

type VerificationStatusHandler struct {
	LifecycleService *service.LifecycleService
}

// ServeHTTP godoc
//
//	@Summary		Check Verification Status
//	@Description	Reports whether an application exists for the email and whether its address has been verified.
//	@Description	Unknown emails return exists=false rather than an error so the frontend can poll freely.
//	@Tags			Applications
//	@Produce		json
//	@Param			email	path		string										true	"Applicant email"
//	@Success		200		{object}	applicantsdk.VerificationStatusResponse	"exists, verified, status"
//	@Failure		400		{object}	applicantsdk.ErrorResponse					"error, error_description"
//	@Failure		500		{object}	applicantsdk.ErrorResponse					"error, error_description"
//	@Router			/v1/applications/{email}/verification [get].
func (h *VerificationStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	state, err := h.LifecycleService.CheckVerification(ctx, r.PathValue("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		default:
			log.Error("failed to check verification status", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to check verification status",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, applicantsdk.VerificationStatusResponse{
		Exists:   state.Exists,
		Verified: state.Verified,
		Status:   string(state.Status),
	})
}
