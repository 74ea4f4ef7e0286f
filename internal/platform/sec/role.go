// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the "rol" claim of a token.
type UserRole string

const (
	RoleAdmin UserRole = "admin"

	// RoleModerator may export the catalogue and refresh image dimensions.
	RoleModerator UserRole = "moderator"

	// RoleEditor edits records in the back office; it has no API privileges here.
	RoleEditor UserRole = "editor"

	RoleReader UserRole = "reader"
)

// roleRank orders roles from least to most privileged. Unknown roles rank 0.
var roleRank = map[UserRole]int{
	RoleReader:    1,
	RoleEditor:    2,
	RoleModerator: 3,
	RoleAdmin:     4,
}

// AtLeast reports whether r grants everything target grants. An unknown role
// never satisfies a known one.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] >= roleRank[target]
}
