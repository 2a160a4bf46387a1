// Package authz implements the single authorization predicate consulted by
// every entity operation in the portal. Entity services never re-implement
// role or ownership checks; they describe the operation with an OpClass and
// let the predicate decide.
package authz

import (
	"github.com/google/uuid"
	"github.com/portal/backend/internal/domain/identity"
	"github.com/portal/backend/internal/domain/shared"
)

// OpClass classifies an operation for the authorization predicate
type OpClass string

const (
	// OpReadOwn: admins always allowed; clients only on their own project
	OpReadOwn OpClass = "read-own"

	// OpWriteAdminOnly: admins only
	OpWriteAdminOnly OpClass = "write-admin-only"

	// OpWriteClientOfOwn: the owning client only; admins denied.
	// Used for client-initiated approvals on their own project.
	OpWriteClientOfOwn OpClass = "write-client-of-own"

	// OpMutateOwnResource: the creator of the specific resource,
	// regardless of role. Evaluated via AuthorizeResource.
	OpMutateOwnResource OpClass = "mutate-own-resource"
)

// Caller is a resolved, authenticated actor
type Caller struct {
	UserID uuid.UUID
	Role   identity.Role
}

// Authorize decides whether the caller may perform an operation of the given
// class against a project owned by projectClientID. A nil-equivalent caller
// (zero UserID) is Unauthenticated; denial is AccessDenied. The two are
// distinct so transport layers can map them to different statuses.
func Authorize(caller Caller, projectClientID uuid.UUID, op OpClass) error {
	if caller.UserID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !caller.Role.IsValid() {
		return shared.ErrProfileMissing
	}

	switch op {
	case OpReadOwn:
		if caller.Role == identity.RoleAdmin {
			return nil
		}
		if caller.UserID == projectClientID {
			return nil
		}
		return shared.ErrAccessDenied

	case OpWriteAdminOnly:
		if caller.Role == identity.RoleAdmin {
			return nil
		}
		return shared.ErrAccessDenied

	case OpWriteClientOfOwn:
		if caller.Role == identity.RoleClient && caller.UserID == projectClientID {
			return nil
		}
		return shared.ErrAccessDenied

	default:
		return shared.ErrAccessDenied
	}
}

// AuthorizeResource decides OpMutateOwnResource: the actor must be the
// creator of the specific resource. Admins pass unconditionally, matching
// the delete-any semantics they hold portal-wide.
func AuthorizeResource(caller Caller, resourceCreatorID uuid.UUID) error {
	if caller.UserID == uuid.Nil {
		return shared.ErrUnauthenticated
	}
	if !caller.Role.IsValid() {
		return shared.ErrProfileMissing
	}
	if caller.Role == identity.RoleAdmin {
		return nil
	}
	if caller.UserID == resourceCreatorID {
		return nil
	}
	return shared.ErrAccessDenied
}
