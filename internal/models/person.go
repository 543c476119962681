package models

// PersonKind tells apart people who can log in from declared team members
type PersonKind string

const (
	PersonKindStudent PersonKind = "student"
	PersonKindMember  PersonKind = "member"
)

// Person is a known individual that commit authors are matched against
type Person struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Role             Role       `json:"role"`
	DeclaredUsername string     `json:"declared_username,omitempty"`
	Kind             PersonKind `json:"kind"`
}
