package models

import "fmt"

// Role is the project role a student or team member declared at enrollment
type Role string

const (
	RolePM        Role = "PM"
	RoleQA        Role = "QA"
	RoleDeveloper Role = "Developer"
	RoleDevOps    Role = "DevOps"
)

// Roles lists every accepted role in display order
var Roles = []Role{RolePM, RoleQA, RoleDeveloper, RoleDevOps}

// ParseRole validates a role string
func ParseRole(value string) (Role, error) {
	for _, role := range Roles {
		if string(role) == value {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", value)
}
