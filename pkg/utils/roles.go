package utils

const (
	RoleClient      = "client"
	RoleIntervenant = "intervenant"
	RoleAdmin       = "admin"
)

// ValidSignupRoles are the roles a user may pick at registration. Admin
// accounts are only created by seed or by another admin.
var ValidSignupRoles = []string{RoleClient, RoleIntervenant}

var ValidRoles = []string{RoleClient, RoleIntervenant, RoleAdmin}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}

func IsValidSignupRole(role string) bool {
	for _, r := range ValidSignupRoles {
		if role == r {
			return true
		}
	}
	return false
}
