package enums

import (
	"fmt"
	"strings"
)

// Role is the account type chosen at registration.
type Role string

const (
	RolePlayer   Role = "player"
	RoleSelector Role = "selector"
	RoleScout    Role = "scout"
	RoleCoach    Role = "coach"
	RoleFan      Role = "fan"
)

// DefaultRole is assigned when the client does not pick one.
const DefaultRole = RolePlayer

var validRoles = []Role{
	RolePlayer,
	RoleSelector,
	RoleScout,
	RoleCoach,
	RoleFan,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. Blank input maps to DefaultRole;
// anything else must match a role exactly.
func ParseRole(value string) (Role, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultRole, nil
	}
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Roles returns the accepted role values in display order.
func Roles() []Role {
	return append([]Role(nil), validRoles...)
}
