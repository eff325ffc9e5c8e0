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

type SubmitHandler struct {
	LifecycleService *service.LifecycleService
}

// ServeHTTP godoc
//
//	@Summary		Submit Judge Application
//	@Description	Registers a new judge application and emails a verification link to the applicant.
//	@Description	One application per email address; the verification token is valid for 24 hours.
//	@Tags			Applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		applicantsdk.SubmitApplicationRequest	true	"Application payload"
//	@Success		201		{object}	applicantsdk.Application				"the submitted application"
//	@Failure		400		{object}	applicantsdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	applicantsdk.ErrorResponse				"error, error_description"
//	@Failure		500		{object}	applicantsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/applications [post].
func (h *SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req applicantsdk.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
			Error:            applicantsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON in request body",
		})
		return
	}

	app, err := h.LifecycleService.Submit(ctx, service.SubmitRequest{
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Region:      req.Region,
		Education:   req.Education,
		Experience:  req.Experience,
		Motivation:  req.Motivation,
		Attachments: req.Attachments,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrDuplicateApplicant):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeDuplicateApplicant,
				ErrorDescription: "An application already exists for this email",
			})
		default:
			log.Error("failed to submit application", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to submit application",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toApplication(app))
}
