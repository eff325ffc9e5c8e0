package domain

// SystemActor is the audit actor used for self-service transitions.
const SystemActor = "system"

// Actor identifies the caller of an administrative operation, as extracted
// from a verified bearer token.
type Actor struct {
	Subject string
	Scopes  []string
}

// HasScope reports whether the actor holds the given scope.
func (a Actor) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
