package authz

const (
	RoleStudent    = "student"
	RoleCoreMember = "coremember"
	RoleDirector   = "director"
	RoleHOD        = "hod"
	RoleAdmin      = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleCoreMember, RoleDirector, RoleHOD, RoleAdmin:
		return true
	}
	return false
}

func IsElevated(role string) bool {
	return role == RoleDirector || role == RoleHOD || role == RoleAdmin
}
