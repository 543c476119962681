package services

import (
	"context"

	"github.com/alimgiray/coursetrack/internal/bitbucket"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockCommitSource struct {
	mock.Mock
}

func (m *mockCommitSource) ListRepositories(ctx context.Context, token, workspace string) ([]models.Repository, error) {
	args := m.Called(ctx, token, workspace)
	repos, _ := args.Get(0).([]models.Repository)
	return repos, args.Error(1)
}

func (m *mockCommitSource) ListCommits(ctx context.Context, token, workspace, repoSlug string) ([]models.Commit, error) {
	args := m.Called(ctx, token, workspace, repoSlug)
	commits, _ := args.Get(0).([]models.Commit)
	return commits, args.Error(1)
}

func (m *mockCommitSource) GetDiffstat(ctx context.Context, token, workspace, repoSlug, hash string) (*models.Diffstat, error) {
	args := m.Called(ctx, token, workspace, repoSlug, hash)
	diffstat, _ := args.Get(0).(*models.Diffstat)
	return diffstat, args.Error(1)
}

type mockGroupDirectory struct {
	mock.Mock
}

func (m *mockGroupDirectory) GetStudent(id string) (*models.Student, error) {
	args := m.Called(id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockGroupDirectory) ListStudents() ([]*models.Student, error) {
	args := m.Called()
	students, _ := args.Get(0).([]*models.Student)
	return students, args.Error(1)
}

func (m *mockGroupDirectory) Candidates(studentID string) ([]models.Person, error) {
	args := m.Called(studentID)
	people, _ := args.Get(0).([]models.Person)
	return people, args.Error(1)
}

func (m *mockGroupDirectory) Aliases(studentID string) ([]*models.ContributorAlias, error) {
	args := m.Called(studentID)
	aliases, _ := args.Get(0).([]*models.ContributorAlias)
	return aliases, args.Error(1)
}

type mockAccountSource struct {
	mock.Mock
}

func (m *mockAccountSource) GetCurrentUser(ctx context.Context, token string) (*bitbucket.User, string, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*bitbucket.User)
	return user, args.String(1), args.Error(2)
}
