package usecase

import (
	"student-housing/internal/data/entity"
	"student-housing/internal/data/repository"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (a Actor) IsAdmin() bool   { return a.Role == entity.RoleAdmin }
func (a Actor) IsOwner() bool   { return a.Role == entity.RoleOwner }
func (a Actor) IsStudent() bool { return a.Role == entity.RoleStudent }

// scopeFor limits booking and payment reads to what the actor may see.
func scopeFor(a Actor) repository.Scope {
	id := a.UserID
	switch a.Role {
	case entity.RoleStudent:
		return repository.Scope{StudentID: &id}
	case entity.RoleOwner:
		return repository.Scope{OwnerID: &id}
	default:
		return repository.Scope{}
	}
}
