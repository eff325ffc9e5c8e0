package http

import (
	"errors"
	"net/http"

	"github.com/openawards/applicant/internal/applicant/service"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
	"github.com/openawards/applicant/pkg/slogx"
)

type HistoryHandler struct {
	AdminGateway *service.AdminGateway
}

// ServeHTTP godoc
//
//	@Summary		Application Audit History
//	@Description	Returns the application and its full status transition history, most recent first.
//	@Tags			Review
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with applications:read scope"
//	@Param			email			path		string							true	"Applicant email"
//	@Success		200				{object}	applicantsdk.HistoryResponse	"application, history"
//	@Failure		400				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{string}	string							"insufficient_scope (from the scope middleware)"
//	@Failure		404				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	applicantsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/applications/{email}/history [get].
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	app, entries, err := h.AdminGateway.GetHistory(ctx, actorFromContext(ctx), r.PathValue("email"))
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
				ErrorDescription: "Caller lacks the applications:read scope",
			})
		case errors.Is(err, service.ErrApplicationNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeNotFound,
				ErrorDescription: "Application not found",
			})
		default:
			log.Error("failed to load application history", "error", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, applicantsdk.ErrorResponse{
				Error:            applicantsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to load application history",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, applicantsdk.HistoryResponse{
		Application: toApplication(app),
		History:     toAuditEntries(entries),
	})
}
