package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/slogx"
)

// ReviewHandler serves the approve and decline decisions.
type ReviewHandler struct {
	AdminGateway *service.AdminGateway
}

// HandleApprove godoc
//
//	@Summary		Approve Application
//	@Description	Approves a judge application. Repeating the decision for an already approved application is a no-op.
//	@Tags			Review
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with applications:review scope"
//	@Param			id				path		string							true	"Application id"
//	@Param			request			body		applicantsdk.ReviewRequest		false	"Optional reviewer notes"
//	@Success		200				{object}	applicantsdk.ReviewResponse	"application, previous_status, changed"
//	@Failure		401				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{string}	string							"insufficient_scope (from the scope middleware)"
//	@Failure		404				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/applications/{id}/approve [post].
func (h *ReviewHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.StatusApproved)
}

// HandleDecline godoc
//
//	@Summary		Decline Application
//	@Description	Declines a judge application. Declined is terminal; there is no reopen path.
//	@Tags			Review
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with applications:review scope"
//	@Param			id				path		string							true	"Application id"
//	@Param			request			body		applicantsdk.ReviewRequest		false	"Optional reviewer notes"
//	@Success		200				{object}	applicantsdk.ReviewResponse	"application, previous_status, changed"
//	@Failure		401				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{string}	string							"insufficient_scope (from the scope middleware)"
//	@Failure		404				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/applications/{id}/decline [post].
func (h *ReviewHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, domain.StatusDeclined)
}

func (h *ReviewHandler) decide(w http.ResponseWriter, r *http.Request, target domain.Status) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Notes are optional; an empty body is fine.
	var req applicantsdk.ReviewRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteJSON(w, http.StatusBadRequest, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "Invalid JSON in request body",
			})
			return
		}
	}

	actor := actorFromContext(ctx)
	id := r.PathValue("id")

	var (
		res service.ReviewResult
		err error
	)
	if target == domain.StatusApproved {
		res, err = h.AdminGateway.Approve(ctx, actor, id, req.Notes)
	} else {
		res, err = h.AdminGateway.Decline(ctx, actor, id, req.Notes)
	}
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
				ErrorDescription: "Application not found",
			})
		case errors.Is(err, service.ErrInvalidTransition):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeInvalidTransition,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrConflict):
			httpx.WriteJSON(w, http.StatusConflict, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeConflict,
				ErrorDescription: "The application was modified concurrently; try again",
			})
		default:
			log.Error("failed to record review decision", "error", err, "target", string(target))
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to record review decision",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, applicantsdk.ReviewResponse{
		Application:    toApplication(res.Application),
		PreviousStatus: string(res.Previous),
		Changed:        res.Changed,
	})
}
