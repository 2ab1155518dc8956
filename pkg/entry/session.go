// Package entry holds the client-side cores of the shop entry workflows:
// customer resolution, debounced search, transaction and quotation entry, and
// optimistic stock adjustment. Everything here is UI-agnostic and exercised
// against the HTTP API through small injected interfaces.
package entry

import (
	"github.com/google/uuid"
)

// Role is the closed set of caller roles a session can carry.
type Role interface {
	isRole()
}

// ScopedRole is a staff member bound to one shop for the whole session.
type ScopedRole struct {
	ShopID uuid.UUID
}

func (ScopedRole) isRole() {}

// PrivilegedRole is a cross-shop caller. Selected names the shop currently
// acted on; All widens reads to every shop. With neither set, the scope is
// unresolved and writes are rejected locally.
type PrivilegedRole struct {
	Selected *uuid.UUID
	All      bool
}

func (PrivilegedRole) isRole() {}

// Session identifies the authenticated user and their scope. It is passed
// explicitly to every operation; nothing in this package reads ambient state.
type Session struct {
	UserID uuid.UUID
	Role   Role
}

// EffectiveShopID returns the single shop this session acts on, or false when
// no concrete shop is resolved (privileged with no selection, or "all").
func (s Session) EffectiveShopID() (uuid.UUID, bool) {
	switch role := s.Role.(type) {
	case ScopedRole:
		return role.ShopID, true
	case PrivilegedRole:
		if role.Selected != nil && !role.All {
			return *role.Selected, true
		}
	}
	return uuid.Nil, false
}

// AllShops reports whether the session reads across every shop.
func (s Session) AllShops() bool {
	role, ok := s.Role.(PrivilegedRole)
	return ok && role.All
}

// SelectShop returns a copy of the session scoped to the given shop. It is a
// no-op for scoped sessions, which cannot change shop.
func (s Session) SelectShop(shopID uuid.UUID) Session {
	if _, ok := s.Role.(PrivilegedRole); ok {
		s.Role = PrivilegedRole{Selected: &shopID}
	}
	return s
}
