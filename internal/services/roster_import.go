package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/internal/repositories"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"gopkg.in/yaml.v3"
)

// RosterFile is the YAML seed format used by trackerctl
type RosterFile struct {
	Students []RosterGroup `yaml:"students"`
}

type RosterGroup struct {
	Name      string         `yaml:"name"`
	Email     string         `yaml:"email"`
	Username  string         `yaml:"username"`
	Role      string         `yaml:"role"`
	Workspace string         `yaml:"workspace"`
	Token     string         `yaml:"token"`
	Team      []RosterMember `yaml:"team"`
	Aliases   []RosterAlias  `yaml:"aliases"`
}

type RosterMember struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Username string `yaml:"username"`
}

type RosterAlias struct {
	Bitbucket string `yaml:"bitbucket"`
	Person    string `yaml:"person"`
}

// ImportSummary counts what an import created
type ImportSummary struct {
	Students    int
	TeamMembers int
	Aliases     int
}

func ParseRosterFile(r io.Reader) (*RosterFile, error) {
	var file RosterFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}
	return &file, nil
}

// Group returns the group whose student name or username matches, ignoring case
func (f *RosterFile) Group(name string) (*RosterGroup, bool) {
	target := matching.Normalize(name)
	for i := range f.Students {
		g := &f.Students[i]
		if matching.Normalize(g.Name) == target || matching.Normalize(g.Username) == target {
			return g, true
		}
	}
	return nil, false
}

// Candidates returns the group as match candidates, student first
func (g *RosterGroup) Candidates() []models.Person {
	role, _ := models.ParseRole(g.Role)
	student := models.Student{ID: g.Username, Name: g.Name, BitbucketUsername: g.Username, Role: role}

	people := []models.Person{student.Person()}
	for i, m := range g.Team {
		memberRole, _ := models.ParseRole(m.Role)
		member := models.TeamMember{ID: fmt.Sprintf("%s-%d", g.Username, i), Name: m.Name, Role: memberRole}
		if m.Username != "" {
			username := m.Username
			member.DeclaredUsername = &username
		}
		people = append(people, member.Person())
	}
	return people
}

// AliasTable returns the group's aliases in the stored form
func (g *RosterGroup) AliasTable() []*models.ContributorAlias {
	aliases := make([]*models.ContributorAlias, 0, len(g.Aliases))
	for _, a := range g.Aliases {
		aliases = append(aliases, models.NewContributorAlias(g.Username, a.Bitbucket, a.Person))
	}
	return aliases
}

// ImportRoster loads students, team members and aliases from a seed file. Students that are
// already registered are reused and only their missing team members and aliases are added.
func (s *RosterService) ImportRoster(file *RosterFile) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for _, group := range file.Students {
		role := models.RoleDeveloper
		if group.Role != "" {
			parsed, err := models.ParseRole(group.Role)
			if err != nil {
				return summary, fmt.Errorf("student %s: %w", group.Username, err)
			}
			role = parsed
		}

		student, err := s.studentRepo.GetByUsername(group.Username)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			student, err = s.RegisterStudent(group.Name, group.Email, group.Username, role)
			if err != nil {
				return summary, fmt.Errorf("student %s: %w", group.Username, err)
			}
			summary.Students++
		case err != nil:
			return summary, err
		}

		if group.Workspace != "" || group.Token != "" {
			workspace := group.Workspace
			if workspace == "" {
				workspace = student.Workspace
			}
			if err := s.UpdateWorkspace(student.ID, workspace, group.Token); err != nil {
				return summary, fmt.Errorf("student %s: %w", group.Username, err)
			}
		}

		existing, err := s.teamMemberRepo.GetByStudentID(student.ID)
		if err != nil {
			return summary, err
		}
		known := make(map[string]bool, len(existing))
		for _, m := range existing {
			known[matching.Normalize(m.Name)] = true
		}

		for _, m := range group.Team {
			if known[matching.Normalize(m.Name)] {
				continue
			}
			if _, err := s.AddTeamMember(student.ID, m.Name, m.Role, m.Username); err != nil {
				return summary, fmt.Errorf("team member %s of %s: %w", m.Name, group.Username, err)
			}
			known[matching.Normalize(m.Name)] = true
			summary.TeamMembers++
		}

		for _, a := range group.Aliases {
			alias := models.NewContributorAlias(student.ID, strings.TrimSpace(a.Bitbucket), strings.TrimSpace(a.Person))
			if err := s.aliasRepo.Create(alias); err != nil {
				if errors.Is(err, repositories.ErrAlreadyExists) {
					continue
				}
				return summary, fmt.Errorf("alias %s of %s: %w", a.Bitbucket, group.Username, err)
			}
			summary.Aliases++
		}

		logger.WithField("student", group.Username).Info("Roster group imported")
	}

	return summary, nil
}
