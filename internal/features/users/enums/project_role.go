package users_enums

// ProjectRole is the standing of a user in a particular project. It is
// computed from the project owner and the membership rows, never stored.
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleNone   ProjectRole = "NONE"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleMember, ProjectRoleNone:
		return true
	default:
		return false
	}
}

// HasAccess reports whether the role grants read access to the project.
func (r ProjectRole) HasAccess() bool {
	return r == ProjectRoleOwner || r == ProjectRoleMember
}
