// Package auth resolves the caller's identity from a bearer token and hands
// it to services as an explicit parameter. Services never read ambient state.
package auth

// RoleAdmin is the only role with workflow-mutation rights over other
// participants' registrations.
const RoleAdmin = "admin"

// Identity is the resolved caller. Admin is decided once, at token
// resolution, so services only ever branch on the boolean.
type Identity struct {
	UserID uint
	Role   string
	Admin  bool
}

// ResolveAdmin applies the role policy. The affirmative grant is
// role == "admin"; treating an empty role as admin is a legacy shim kept
// behind a flag and off by default.
func ResolveAdmin(role string, legacyNullRoleAdmin bool) bool {
	if role == RoleAdmin {
		return true
	}
	return role == "" && legacyNullRoleAdmin
}
