package user

// Role is the closed set of user roles. The zero value is RoleUser and the
// numeric order is the privilege order.
type Role uint8

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdministrator
)

var roleNames = [...]string{
	RoleUser:          "user",
	RoleModerator:     "moderator",
	RoleAdministrator: "administrator",
}

// Roles lists every role in ascending order.
func Roles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdministrator}
}

// ParseRole accepts the names produced by Role.String.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return RoleUser, newInvalidRoleError(s)
}

func (r Role) IsValid() bool { return int(r) < len(roleNames) }

func (r Role) String() string {
	if !r.IsValid() {
		return "unknown"
	}
	return roleNames[r]
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, newInvalidRoleError(r.String())
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
