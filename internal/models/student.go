package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is an enrolled student who logs in with Bitbucket and owns one project group
type Student struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	BitbucketUsername string    `json:"bitbucket_username"`
	Workspace         string    `json:"workspace"`
	BitbucketToken    string    `json:"-"`
	Role              Role      `json:"role"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewStudent creates a new Student with a generated UUID. The workspace defaults to the
// student's personal Bitbucket workspace, which shares the username.
func NewStudent(name, email, bitbucketUsername string, role Role) *Student {
	return &Student{
		ID:                uuid.New().String(),
		Name:              name,
		Email:             email,
		BitbucketUsername: bitbucketUsername,
		Workspace:         bitbucketUsername,
		Role:              role,
		CreatedAt:         time.Now(),
	}
}

// Person returns the student as a match candidate
func (s *Student) Person() Person {
	return Person{
		ID:               s.ID,
		Name:             s.Name,
		Role:             s.Role,
		DeclaredUsername: s.BitbucketUsername,
		Kind:             PersonKindStudent,
	}
}
