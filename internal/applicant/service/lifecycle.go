package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/openawards/applicant/internal/applicant/domain"
	"github.com/openawards/applicant/internal/applicant/store"
	"github.com/openawards/applicant/pkg/cryptox"
	"github.com/openawards/applicant/pkg/idx"
	"github.com/openawards/applicant/pkg/slogx"
)

var (
	ErrValidation          = errors.New("invalid application request")
	ErrDuplicateApplicant  = errors.New("an application already exists for this email")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyVerified     = errors.New("application email is already verified")
	ErrTokenExpired        = errors.New("verification token has expired")
	ErrInvalidTransition   = errors.New("status transition is not allowed")

	// ErrConflict reports that concurrent writers kept invalidating the
	// compare-and-swap after all retries. Callers may simply try again.
	ErrConflict = errors.New("application was modified concurrently")
)

// conflictRetries bounds how often a mutation is retried against fresh
// state after a lost compare-and-swap before giving up with ErrConflict.
const conflictRetries = 3

// LifecycleService owns the application state machine: intake, email
// verification, review decisions, and account-creation handoff. Every
// status transition is written together with its audit entry in one
// transaction.
type LifecycleService struct {
	Store         store.Store
	Tokens        *TokenService
	Notifications *Dispatcher

	// BaseURL is the public origin links are built against.
	BaseURL string

	// AutoApproveOnVerify skips manual review: verified applications move
	// straight to Approved instead of PendingApproval.
	AutoApproveOnVerify bool
}

// SubmitRequest is the applicant-supplied intake payload.
type SubmitRequest struct {
	Email       string
	FullName    string
	Phone       string
	Region      string
	Education   string
	Experience  string
	Motivation  string
	Attachments []string
}

// ReviewResult reports the outcome of an administrative decision.
type ReviewResult struct {
	Application domain.Application
	Previous    domain.Status
	Changed     bool
}

// VerificationState is the self-service answer to "where is my application".
type VerificationState struct {
	Exists   bool
	Verified bool
	Status   domain.Status
}

// Submit registers a new application, issues a verification token, and
// queues the verification email. One application per email address.
func (s *LifecycleService) Submit(ctx context.Context, req SubmitRequest) (domain.Application, error) {
	logger := slogx.FromContext(ctx)

	// 1. Validate and normalise the payload.
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.Application{}, err
	}
	if strings.TrimSpace(req.FullName) == "" {
		return domain.Application{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	// 2. Issue the verification token and hash it for storage. The raw
	//    token only ever leaves the service inside the notification link.
	token, issuedAt, err := s.Tokens.Issue()
	if err != nil {
		return domain.Application{}, fmt.Errorf("issue verification token: %w", err)
	}
	hash, err := cryptox.HashSecret(token)
	if err != nil {
		return domain.Application{}, fmt.Errorf("hash verification token: %w", err)
	}

	now := time.Now().UTC()
	app := domain.Application{
		ID:          idx.New().String(),
		Email:       email,
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		Region:      strings.TrimSpace(req.Region),
		Education:   req.Education,
		Experience:  req.Experience,
		Motivation:  req.Motivation,
		Attachments: req.Attachments,

		Status:   domain.StatusSubmitted,
		Verified: false,

		VerificationTokenHash: &hash,
		TokenIssuedAt:         &issuedAt,

		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}

	// 3. Insert. The unique email index is the duplicate check; racing
	//    submissions lose here rather than on a pre-read.
	if err := s.Store.Applications().Create(ctx, app); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Application{}, ErrDuplicateApplicant
		}
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}

	logger.Info("application submitted",
		slog.String("application_id", app.ID),
		slog.String("email", app.Email),
	)

	// 4. Queue the verification email. Delivery is best-effort and never
	//    affects the submission outcome.
	s.enqueue(Notification{
		Email: app.Email,
		Kind:  NotificationVerification,
		Data: map[string]string{
			"verify_url": s.buildLink("/verify", app.Email, token),
		},
	})

	return app, nil
}

// VerifyEmail consumes a verification token and marks the application as
// verified. First-time verification of a Submitted application also moves
// it forward: to Approved when auto-approval is on, otherwise to
// PendingApproval for manual review.
func (s *LifecycleService) VerifyEmail(ctx context.Context, email, token string) (domain.Application, error) {
	logger := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.Application{}, err
	}
	if token == "" {
		return domain.Application{}, fmt.Errorf("%w: token is required", ErrValidation)
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		// 1. Load fresh state and check the token against the stored hash.
		app, err := s.Store.Applications().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Application{}, ErrApplicationNotFound
			}
			return domain.Application{}, fmt.Errorf("load application: %w", err)
		}
		if app.Verified {
			return domain.Application{}, ErrAlreadyVerified
		}
		if app.VerificationTokenHash == nil {
			// Token was cleared by housekeeping after expiry.
			return domain.Application{}, ErrTokenExpired
		}
		if err := cryptox.VerifySecret(token, *app.VerificationTokenHash); err != nil {
			logger.Warn("verification token mismatch", slog.String("email", email))
			return domain.Application{}, ErrApplicationNotFound
		}
		if app.TokenIssuedAt == nil || !s.Tokens.Valid(*app.TokenIssuedAt, time.Now().UTC()) {
			return domain.Application{}, ErrTokenExpired
		}

		// 2. Consume the token and advance the state machine. Verification
		//    after an out-of-band review decision only flips the flag.
		prev := app.Status
		next := prev
		if prev == domain.StatusSubmitted {
			next = domain.StatusPendingApproval
			if s.AutoApproveOnVerify {
				next = domain.StatusApproved
			}
		}
		app.Verified = true
		app.VerificationTokenHash = nil
		app.TokenIssuedAt = nil
		app.Status = next

		// 3. Write the new state and, when the status moved, its audit
		//    entry in the same transaction.
		updated, err := s.commit(ctx, app, prev, domain.SystemActor, "email verified")
		if err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				continue
			}
			return domain.Application{}, err
		}

		logger.Info("application email verified",
			slog.String("application_id", updated.ID),
			slog.String("email", updated.Email),
			slog.String("status", string(updated.Status)),
		)

		if updated.Status == domain.StatusApproved {
			s.enqueue(Notification{
				Email: updated.Email,
				Kind:  NotificationApproval,
				Data:  map[string]string{"status": string(updated.Status)},
			})
		}

		return updated, nil
	}

	return domain.Application{}, ErrConflict
}

// Approve moves an application to Approved. Re-approving an already
// approved application is a no-op rather than an error, so operator
// retries stay safe.
func (s *LifecycleService) Approve(ctx context.Context, applicationID, actor, notes string) (ReviewResult, error) {
	return s.review(ctx, applicationID, actor, notes, domain.StatusApproved, NotificationApproval)
}

// Decline moves an application to Declined. Declined is terminal; there is
// no reopen path. Like Approve, repeating the decision is a no-op.
func (s *LifecycleService) Decline(ctx context.Context, applicationID, actor, notes string) (ReviewResult, error) {
	return s.review(ctx, applicationID, actor, notes, domain.StatusDeclined, NotificationDecline)
}

func (s *LifecycleService) review(ctx context.Context, applicationID, actor, notes string, target domain.Status, kind NotificationKind) (ReviewResult, error) {
	logger := slogx.FromContext(ctx)

	if applicationID == "" {
		return ReviewResult{}, fmt.Errorf("%w: application id is required", ErrValidation)
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		app, err := s.Store.Applications().GetByID(ctx, applicationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ReviewResult{}, ErrApplicationNotFound
			}
			return ReviewResult{}, fmt.Errorf("load application: %w", err)
		}

		// Idempotent retry: already in the target state means done.
		if app.Status == target {
			return ReviewResult{Application: app, Previous: target, Changed: false}, nil
		}
		if !app.Status.CanTransitionTo(target) {
			return ReviewResult{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, target)
		}

		prev := app.Status
		app.Status = target

		updated, err := s.commit(ctx, app, prev, actor, notes)
		if err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				continue
			}
			return ReviewResult{}, err
		}

		logger.Info("application reviewed",
			slog.String("application_id", updated.ID),
			slog.String("actor", actor),
			slog.String("from", string(prev)),
			slog.String("to", string(target)),
		)

		s.enqueue(Notification{
			Email: updated.Email,
			Kind:  kind,
			Data:  map[string]string{"status": string(target)},
		})

		return ReviewResult{Application: updated, Previous: prev, Changed: true}, nil
	}

	return ReviewResult{}, ErrConflict
}

// IssueSignupLink mints a single-use signup token for a verified
// application and returns the link to hand to the applicant. Issuing again
// supersedes any earlier token.
func (s *LifecycleService) IssueSignupLink(ctx context.Context, email string) (string, error) {
	logger := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	token, _, err := s.Tokens.Issue()
	if err != nil {
		return "", fmt.Errorf("issue signup token: %w", err)
	}
	hash, err := cryptox.HashSecret(token)
	if err != nil {
		return "", fmt.Errorf("hash signup token: %w", err)
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		app, err := s.Store.Applications().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return "", ErrApplicationNotFound
			}
			return "", fmt.Errorf("load application: %w", err)
		}
		if !app.Verified {
			// Unverified applications are invisible to the signup flow.
			return "", ErrApplicationNotFound
		}

		app.SignupTokenHash = &hash

		if _, err := s.Store.Applications().Update(ctx, app); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				continue
			}
			return "", fmt.Errorf("store signup token: %w", err)
		}

		logger.Info("signup link issued",
			slog.String("application_id", app.ID),
			slog.String("email", app.Email),
		)

		return s.buildLink("/signup", app.Email, token), nil
	}

	return "", ErrConflict
}

// ConsumeSignupLink redeems a signup token and moves an approved
// application to AccountCreated, its final state. The token is single-use:
// the stored hash is cleared in the same write.
func (s *LifecycleService) ConsumeSignupLink(ctx context.Context, email, token string) (domain.Application, error) {
	logger := slogx.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.Application{}, err
	}
	if token == "" {
		return domain.Application{}, fmt.Errorf("%w: token is required", ErrValidation)
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		app, err := s.Store.Applications().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Application{}, ErrApplicationNotFound
			}
			return domain.Application{}, fmt.Errorf("load application: %w", err)
		}
		if app.SignupTokenHash == nil {
			return domain.Application{}, ErrApplicationNotFound
		}
		if err := cryptox.VerifySecret(token, *app.SignupTokenHash); err != nil {
			logger.Warn("signup token mismatch", slog.String("email", email))
			return domain.Application{}, ErrApplicationNotFound
		}
		if !app.Status.CanTransitionTo(domain.StatusAccountCreated) {
			return domain.Application{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, domain.StatusAccountCreated)
		}

		prev := app.Status
		app.Status = domain.StatusAccountCreated
		app.SignupTokenHash = nil

		updated, err := s.commit(ctx, app, prev, domain.SystemActor, "signup link redeemed")
		if err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				continue
			}
			return domain.Application{}, err
		}

		logger.Info("applicant account created",
			slog.String("application_id", updated.ID),
			slog.String("email", updated.Email),
		)

		return updated, nil
	}

	return domain.Application{}, ErrConflict
}

// CheckVerification reports whether an application exists for the email
// and whether it has been verified. Unknown emails are not an error here;
// the self-service poller treats them as "not submitted yet".
func (s *LifecycleService) CheckVerification(ctx context.Context, email string) (VerificationState, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return VerificationState{}, err
	}

	app, err := s.Store.Applications().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return VerificationState{}, nil
		}
		return VerificationState{}, fmt.Errorf("load application: %w", err)
	}

	return VerificationState{Exists: true, Verified: app.Verified, Status: app.Status}, nil
}

// GetHistory returns the application and its full audit trail, most
// recent transition first.
func (s *LifecycleService) GetHistory(ctx context.Context, email string) (domain.Application, []domain.AuditEntry, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.Application{}, nil, err
	}

	app, err := s.Store.Applications().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Application{}, nil, ErrApplicationNotFound
		}
		return domain.Application{}, nil, fmt.Errorf("load application: %w", err)
	}

	entries, err := s.Store.Audit().ListByEmail(ctx, email)
	if err != nil {
		return domain.Application{}, nil, fmt.Errorf("load audit trail: %w", err)
	}

	return app, entries, nil
}

// commit writes the application state and, when the status changed, the
// matching audit entry in a single transaction.
func (s *LifecycleService) commit(ctx context.Context, app domain.Application, prev domain.Status, actor, notes string) (domain.Application, error) {
	var updated domain.Application

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		updated, err = tx.Applications().Update(ctx, app)
		if err != nil {
			return err
		}
		if app.Status == prev {
			return nil
		}
		return tx.Audit().Append(ctx, domain.AuditEntry{
			ID:             idx.New().String(),
			ApplicationID:  app.ID,
			Email:          app.Email,
			PreviousStatus: prev,
			NewStatus:      app.Status,
			Actor:          actor,
			Notes:          notes,
			CreatedAt:      time.Now().UTC(),
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) || errors.Is(err, store.ErrNotFound) {
			return domain.Application{}, err
		}
		return domain.Application{}, fmt.Errorf("commit transition: %w", err)
	}

	return updated, nil
}

func (s *LifecycleService) enqueue(n Notification) {
	if s.Notifications == nil {
		return
	}
	s.Notifications.Enqueue(n)
}

func (s *LifecycleService) buildLink(path, email, token string) string {
	return fmt.Sprintf("%s%s?email=%s&token=%s",
		strings.TrimRight(s.BaseURL, "/"), path,
		url.QueryEscape(email), url.QueryEscape(token),
	)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: malformed email address", ErrValidation)
	}
	return email, nil
}
