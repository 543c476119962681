package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember is a person declared by a student as part of their project team.
// Team members never log in.
type TeamMember struct {
	ID               string    `json:"id"`
	StudentID        string    `json:"student_id"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	DeclaredUsername *string   `json:"declared_username"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewTeamMember creates a new TeamMember with a generated UUID
func NewTeamMember(studentID, name string, role Role, declaredUsername *string) *TeamMember {
	return &TeamMember{
		ID:               uuid.New().String(),
		StudentID:        studentID,
		Name:             name,
		Role:             role,
		DeclaredUsername: declaredUsername,
		CreatedAt:        time.Now(),
	}
}

// Person returns the team member as a match candidate
func (m *TeamMember) Person() Person {
	p := Person{
		ID:   m.ID,
		Name: m.Name,
		Role: m.Role,
		Kind: PersonKindMember,
	}
	if m.DeclaredUsername != nil {
		p.DeclaredUsername = *m.DeclaredUsername
	}
	return p
}
