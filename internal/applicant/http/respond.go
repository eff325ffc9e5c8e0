package http

import (
	"context"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/pkg/applicantsdk"
	"github.com/openawards/applicant/pkg/httpx"
)

// toApplication maps a domain record to its public wire form. Token hashes
// and the full applicant payload stay server-side.
func toApplication(a domain.Application) applicantsdk.Application {
	return applicantsdk.Application{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		Phone:     a.Phone,
		Region:    a.Region,
		Status:    string(a.Status),
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAuditEntries(entries []domain.AuditEntry) []applicantsdk.AuditEntry {
	out := make([]applicantsdk.AuditEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, applicantsdk.AuditEntry{
			ID:             e.ID,
			PreviousStatus: string(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			Actor:          e.Actor,
			Notes:          e.Notes,
			CreatedAt:      e.CreatedAt,
		})
	}
	return out
}

// actorFromContext builds the acting identity from the verified bearer
// claims the authn middleware stored on the context.
func actorFromContext(ctx context.Context) domain.Actor {
	return domain.Actor{
		Subject: httpx.SubjectFromContext(ctx),
		Scopes:  httpx.ScopesFromContext(ctx),
	}
}
