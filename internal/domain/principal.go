package domain

// Role codes carried in token claims.
const (
	RoleOrgAdmin    = "org-admin"
	RoleSystemAdmin = "system-admin"
)

// Principal is the authenticated caller: user id plus role and organization
// claims. Identity issuance itself is handled by the auth adapter; services
// only ever see this struct.
type Principal struct {
	UserID    string
	Email     string
	Roles     []string
	AdminOrgs []int
}

// HasRole reports whether the principal carries the given role code.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdminOf reports whether the principal administers the organization.
// System admins administer every organization.
func (p *Principal) IsAdminOf(orgID int) bool {
	if p == nil {
		return false
	}
	if p.HasRole(RoleSystemAdmin) {
		return true
	}
	if !p.HasRole(RoleOrgAdmin) {
		return false
	}
	for _, id := range p.AdminOrgs {
		if id == orgID {
			return true
		}
	}
	return false
}

// AccessControlService decides per-entity read/update permission.
// Failures are ErrNotAccessible; single-entity reads are never silently
// filtered, only list queries are.
type AccessControlService interface {
	CheckReadRegistration(principal *Principal, reg *Registration) error
	CheckUpdateRegistration(principal *Principal, reg *Registration) error
	CheckReadOrder(principal *Principal, order *Order, reg *Registration) error
	CheckUpdateOrder(principal *Principal, order *Order, reg *Registration) error
	// RequireOrgAdmin returns ErrNotAccessible unless the principal
	// administers the organization.
	RequireOrgAdmin(principal *Principal, orgID int) error
}
