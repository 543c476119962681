package models

import (
	"time"

	"github.com/google/uuid"
)

// ContributorAlias maps a Bitbucket account name that never resembles its owner's enrolled
// name to the roster person it belongs to
type ContributorAlias struct {
	ID                string    `json:"id"`
	StudentID         string    `json:"student_id"`
	BitbucketUsername string    `json:"bitbucket_username"`
	PersonName        string    `json:"person_name"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewContributorAlias creates a new alias with a generated UUID
func NewContributorAlias(studentID, bitbucketUsername, personName string) *ContributorAlias {
	return &ContributorAlias{
		ID:                uuid.New().String(),
		StudentID:         studentID,
		BitbucketUsername: bitbucketUsername,
		PersonName:        personName,
		CreatedAt:         time.Now(),
	}
}
