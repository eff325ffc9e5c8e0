package domain

import "time"

// AuditEntry records a single status transition. Entries are append-only
// and never mutated; the ULID id doubles as a sortable ordering key.
type AuditEntry struct {
	ID             string
	ApplicationID  string
	Email          string
	PreviousStatus Status
	NewStatus      Status
	Actor          string // operator subject, or "system" for self-service
	Notes          string
	CreatedAt      time.Time
}
