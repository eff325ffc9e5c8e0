package applicantsdk

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// SubmitApplicationRequest is the intake payload for a new judge application.
type SubmitApplicationRequest struct {
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Phone       string   `json:"phone,omitempty"`
	Region      string   `json:"region,omitempty"`
	Education   string   `json:"education,omitempty"`
	Experience  string   `json:"experience,omitempty"`
	Motivation  string   `json:"motivation,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// Application is the public view of an application record. Token material
// never appears here.
type Application struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Region    string    `json:"region,omitempty"`
	Status    string    `json:"status"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerifyEmailRequest consumes a verification token from the emailed link.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// VerificationStatusResponse answers the self-service status poll.
type VerificationStatusResponse struct {
	Exists   bool   `json:"exists"`
	Verified bool   `json:"verified"`
	Status   string `json:"status,omitempty"`
}

// ReviewRequest carries optional reviewer notes for approve/decline.
type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ReviewResponse reports the outcome of an approve/decline call. Changed is
// false when the application was already in the requested state.
type ReviewResponse struct {
	Application    Application `json:"application"`
	PreviousStatus string      `json:"previous_status"`
	Changed        bool        `json:"changed"`
}

// SignupLinkRequest asks for a signup link for a verified application.
type SignupLinkRequest struct {
	Email string `json:"email"`
}

// SignupLinkResponse carries the single-use signup URL.
type SignupLinkResponse struct {
	SignupURL string `json:"signup_url"`
}

// CompleteSignupRequest redeems a signup token.
type CompleteSignupRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// AuditEntry is one recorded status transition.
type AuditEntry struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Actor          string    `json:"actor"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse is an application together with its audit trail, most
// recent transition first.
type HistoryResponse struct {
	Application Application  `json:"application"`
	History     []AuditEntry `json:"history"`
}

// HealthChecks reports per-dependency health for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
