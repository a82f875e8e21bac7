package shared

import (
	"github.com/google/uuid"
)

// ActorKind discriminates between an interactive user and trusted
// non-interactive access (schedulers, migrations, maintenance scripts).
type ActorKind string

const (
	ActorKindUser   ActorKind = "USER"
	ActorKindSystem ActorKind = "SYSTEM"
)

// IsValid checks if the kind is a valid ActorKind
func (k ActorKind) IsValid() bool {
	return k == ActorKindUser || k == ActorKindSystem
}

// Actor identifies who performs a mutating operation. It is a tagged value:
// either a concrete authenticated user with a role, or the system sentinel.
// Every mutating application call receives an Actor explicitly; it is never
// inferred from an absent parameter.
type Actor struct {
	Kind   ActorKind
	UserID uuid.UUID // zero for system actors
	Role   string    // empty for system actors
}

// SystemActor returns the actor used for trusted non-interactive operations
func SystemActor() Actor {
	return Actor{Kind: ActorKindSystem}
}

// UserActor returns an actor for an authenticated user
func UserActor(userID uuid.UUID, role string) Actor {
	return Actor{Kind: ActorKindUser, UserID: userID, Role: role}
}

// IsSystem returns true for the system sentinel
func (a Actor) IsSystem() bool {
	return a.Kind == ActorKindSystem
}

// String returns a stable identifier for audit records
func (a Actor) String() string {
	if a.IsSystem() {
		return "system"
	}
	return a.UserID.String()
}
