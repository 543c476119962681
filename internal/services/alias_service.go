package services

import (
	"errors"
	"strings"

	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/internal/repositories"
)

// AliasService manages the admin curated table that links Bitbucket accounts to roster people
type AliasService struct {
	aliasRepo *repositories.ContributorAliasRepository
	roster    *RosterService
}

func NewAliasService(aliasRepo *repositories.ContributorAliasRepository, roster *RosterService) *AliasService {
	return &AliasService{
		aliasRepo: aliasRepo,
		roster:    roster,
	}
}

// CreateAlias links a Bitbucket account to a person of the student's group
func (s *AliasService) CreateAlias(studentID, bitbucketUsername, personName string) (*models.ContributorAlias, error) {
	bitbucketUsername = strings.TrimSpace(bitbucketUsername)
	if bitbucketUsername == "" {
		return nil, ErrBadRequest("Bitbucket username is required")
	}

	candidates, err := s.roster.Candidates(studentID)
	if err != nil {
		return nil, err
	}

	target := matching.Normalize(personName)
	var person *models.Person
	for i := range candidates {
		if matching.Normalize(candidates[i].Name) == target {
			person = &candidates[i]
			break
		}
	}
	if person == nil {
		return nil, ErrBadRequest("person is not part of this group")
	}

	alias := models.NewContributorAlias(studentID, bitbucketUsername, person.Name)
	if err := s.aliasRepo.Create(alias); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, ErrConflict("alias already exists for this Bitbucket account")
		}
		return nil, err
	}
	return alias, nil
}

func (s *AliasService) ListAliases(studentID string) ([]*models.ContributorAlias, error) {
	return s.aliasRepo.GetByStudentID(studentID)
}

func (s *AliasService) DeleteAlias(id string) error {
	return s.aliasRepo.Delete(id)
}

// AliasTable returns the aliases consulted by the special-case matching rule
func (s *AliasService) AliasTable(studentID string) ([]*models.ContributorAlias, error) {
	return s.aliasRepo.GetByStudentID(studentID)
}
