package domain

import "time"

// Status is the lifecycle state of an application.
type Status string

const (
	StatusSubmitted       Status = "Submitted"
	StatusPendingApproval Status = "PendingApproval"
	StatusApproved        Status = "Approved"
	StatusDeclined        Status = "Declined"
	StatusAccountCreated  Status = "AccountCreated"
)

// transitions is the full state graph. Declined and AccountCreated are
// terminal; there is no reopen path for declined applications.
var transitions = map[Status][]Status{
	StatusSubmitted:       {StatusPendingApproval, StatusApproved, StatusDeclined},
	StatusPendingApproval: {StatusApproved, StatusDeclined},
	StatusApproved:        {StatusDeclined, StatusAccountCreated},
	StatusDeclined:        {},
	StatusAccountCreated:  {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions exist from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Application is a judge application record. Email is the unique natural
// key; Version backs optimistic-concurrency updates.
type Application struct {
	ID    string
	Email string

	// Applicant-supplied payload, opaque to the lifecycle.
	FullName    string
	Phone       string
	Region      string
	Education   string
	Experience  string
	Motivation  string
	Attachments []string

	Status   Status
	Verified bool

	VerificationTokenHash *string    // argon2 encoded, nil once consumed
	TokenIssuedAt         *time.Time // issuance time of the verification token
	SignupTokenHash       *string    // argon2 encoded, nil until issued

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}
