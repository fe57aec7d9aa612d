package domain

import "github.com/swiftship/courier-system/shared/models"

// Principal is the authenticated actor a request runs as. Resolution of the
// principal (sessions, tokens) happens outside this service; handlers pass
// the resolved value down with each command.
type Principal struct {
	ID   models.ID
	Name string
}

// IsZero reports whether no principal was resolved
func (p Principal) IsZero() bool {
	return p.ID.IsEmpty()
}
