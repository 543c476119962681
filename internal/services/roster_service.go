package services

import (
	"errors"
	"strings"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/internal/repositories"
)

type RosterService struct {
	studentRepo    *repositories.StudentRepository
	teamMemberRepo *repositories.TeamMemberRepository
	aliasRepo      *repositories.ContributorAliasRepository
}

func NewRosterService(
	studentRepo *repositories.StudentRepository,
	teamMemberRepo *repositories.TeamMemberRepository,
	aliasRepo *repositories.ContributorAliasRepository,
) *RosterService {
	return &RosterService{
		studentRepo:    studentRepo,
		teamMemberRepo: teamMemberRepo,
		aliasRepo:      aliasRepo,
	}
}

// RegisterStudent enrolls a student on first login
func (s *RosterService) RegisterStudent(name, email, username string, role models.Role) (*models.Student, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrBadRequest("Bitbucket username is required")
	}
	if name == "" {
		name = username
	}
	if role == "" {
		role = models.RoleDeveloper
	}

	student := models.NewStudent(name, strings.TrimSpace(email), username, role)
	if err := s.studentRepo.Create(student); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, ErrConflict("student already registered")
		}
		return nil, err
	}
	return student, nil
}

// GetOrRegisterStudent returns the student with the given username, enrolling them if needed
func (s *RosterService) GetOrRegisterStudent(name, email, username string) (*models.Student, bool, error) {
	student, err := s.studentRepo.GetByUsername(username)
	if err == nil {
		return student, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}

	student, err = s.RegisterStudent(name, email, username, models.RoleDeveloper)
	if err != nil {
		return nil, false, err
	}
	return student, true, nil
}

func (s *RosterService) GetStudent(id string) (*models.Student, error) {
	return s.studentRepo.GetByID(id)
}

func (s *RosterService) GetStudentByUsername(username string) (*models.Student, error) {
	return s.studentRepo.GetByUsername(username)
}

func (s *RosterService) ListStudents() ([]*models.Student, error) {
	return s.studentRepo.List()
}

// UpdateWorkspace stores the workspace and token used to read the student's repositories
func (s *RosterService) UpdateWorkspace(studentID, workspace, token string) error {
	workspace = strings.TrimSpace(workspace)
	if workspace == "" {
		return ErrBadRequest("workspace is required")
	}
	return s.studentRepo.UpdateCredentials(studentID, workspace, strings.TrimSpace(token))
}

// DeleteStudent removes a student with their team and aliases. Admin only.
func (s *RosterService) DeleteStudent(id string) error {
	return s.studentRepo.Delete(id)
}

// AddTeamMember declares a member of the student's team
func (s *RosterService) AddTeamMember(studentID, name, role, declaredUsername string) (*models.TeamMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBadRequest("team member name is required")
	}
	parsedRole, err := models.ParseRole(role)
	if err != nil {
		return nil, ErrBadRequest(err.Error())
	}
	if _, err := s.studentRepo.GetByID(studentID); err != nil {
		return nil, err
	}

	var username *string
	if trimmed := strings.TrimSpace(declaredUsername); trimmed != "" {
		username = &trimmed
	}

	member := models.NewTeamMember(studentID, name, parsedRole, username)
	if err := s.teamMemberRepo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *RosterService) ListTeamMembers(studentID string) ([]*models.TeamMember, error) {
	return s.teamMemberRepo.GetByStudentID(studentID)
}

// DeleteTeamMember removes a declared team member. Admin only.
func (s *RosterService) DeleteTeamMember(id string) error {
	return s.teamMemberRepo.Delete(id)
}

// Candidates returns the people commit authors of a student's group are matched against:
// the student first, then team members in declaration order
func (s *RosterService) Candidates(studentID string) ([]models.Person, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		return nil, err
	}
	members, err := s.teamMemberRepo.GetByStudentID(studentID)
	if err != nil {
		return nil, err
	}

	people := make([]models.Person, 0, len(members)+1)
	people = append(people, student.Person())
	for _, m := range members {
		people = append(people, m.Person())
	}
	return people, nil
}

// Aliases returns the alias table of a student's group
func (s *RosterService) Aliases(studentID string) ([]*models.ContributorAlias, error) {
	return s.aliasRepo.GetByStudentID(studentID)
}
