// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// # User Roles

// UserRole is the authorization level carried in the "rol" claim.
type UserRole string

const (
	// RoleMember is every signed-in account.
	RoleMember UserRole = "member"

	// RoleModerator moderates discussions, comments and events in any channel.
	RoleModerator UserRole = "moderator"

	// RoleAdmin administers the site, including the entity cache.
	RoleAdmin UserRole = "admin"
)

// roleOrder lists the roles from least to most privileged.
var roleOrder = []UserRole{RoleMember, RoleModerator, RoleAdmin}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return slices.Contains(roleOrder, r)
}

// AtLeast reports whether r grants everything target grants.
// An unknown role grants nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	return slices.Index(roleOrder, r) >= slices.Index(roleOrder, target) && r.IsValid()
}
