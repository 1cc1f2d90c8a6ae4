// Package access implements the per-request authorization policies. Policies
// are pure predicates over an explicit caller tuple, so they carry no state
// and need no locking.
package access

import (
	"net/http"

	"github.com/gras5/api-yamdb/internal/data/entity"

	"github.com/google/uuid"
)

// Caller is the identity the transport layer resolved for a request. The zero
// value is an anonymous caller.
type Caller struct {
	Authenticated bool
	ID            uuid.UUID
	Username      string
	Role          entity.Role
	Superuser     bool
}

// Anonymous is the caller used when no credentials were presented.
var Anonymous = Caller{}

func (c Caller) isElevated() bool {
	return c.Authenticated && (c.Role == entity.RoleAdmin || c.Superuser)
}

func (c Caller) isModerator() bool {
	return c.Authenticated && c.Role == entity.RoleModerator
}

// Policy names one of the three authorization rules. Each pairs a
// collection-level check (evaluated before the target object is loaded) with
// an object-level check (evaluated once its owner is known).
type Policy int

const (
	// AuthorModAdminOrReadOnly: reads are public; mutation needs an
	// authenticated caller, and on a concrete object the caller must be its
	// author, a moderator, an admin, or a superuser.
	AuthorModAdminOrReadOnly Policy = iota

	// SuperuserAdminOrReadOnly: reads are public; mutation needs admin role
	// or the superuser flag.
	SuperuserAdminOrReadOnly

	// SuperuserOrAdminOnly: every method, reads included, needs admin role or
	// the superuser flag.
	SuperuserOrAdminOnly
)

func (p Policy) String() string {
	switch p {
	case AuthorModAdminOrReadOnly:
		return "author_mod_admin_or_read_only"
	case SuperuserAdminOrReadOnly:
		return "superuser_admin_or_read_only"
	case SuperuserOrAdminOnly:
		return "superuser_or_admin_only"
	}
	return "unknown"
}

// readOnly reports whether the HTTP method cannot mutate state.
func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AllowCollection is the collection-level check, run before any lookup so
// clearly-unauthorized mutation attempts fail fast.
func (p Policy) AllowCollection(c Caller, method string) bool {
	switch p {
	case AuthorModAdminOrReadOnly:
		return readOnly(method) || c.Authenticated
	case SuperuserAdminOrReadOnly:
		return readOnly(method) || c.isElevated()
	case SuperuserOrAdminOnly:
		return c.isElevated()
	}
	return false
}

// AllowObject is the object-level check, run after the target entity has been
// located and its owner is known. ownerID is ignored by the policies whose
// object rule mirrors the collection rule.
func (p Policy) AllowObject(c Caller, method string, ownerID uuid.UUID) bool {
	switch p {
	case AuthorModAdminOrReadOnly:
		if readOnly(method) {
			return true
		}
		return c.Authenticated &&
			(c.ID == ownerID || c.isModerator() || c.isElevated())
	case SuperuserAdminOrReadOnly:
		return readOnly(method) || c.isElevated()
	case SuperuserOrAdminOnly:
		return c.isElevated()
	}
	return false
}
