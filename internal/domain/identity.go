package domain

import "slices"

// Well-known roles recognized by the account registry.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleReadonly = "readonly"
)

// Identity represents a verified user identity as reported by the identity
// authority. The core never constructs identities itself, it only relays what
// the authority returned.
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Status   string   `json:"status"`
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// IsAdmin reports whether the identity may manage accounts and query
// other users' resources.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

// Session is the request-scoped view of a verified identity. It is derived at
// request entry and discarded at request exit; nothing caches it across
// requests.
type Session struct {
	Identity Identity
	Token    string
}
