package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/internal/workers"
	"github.com/alimgiray/coursetrack/pkg/logger"
)

// CommitSource is the upstream the dashboard reads repositories and commits from
type CommitSource interface {
	ListRepositories(ctx context.Context, token, workspace string) ([]models.Repository, error)
	ListCommits(ctx context.Context, token, workspace, repoSlug string) ([]models.Commit, error)
	GetDiffstat(ctx context.Context, token, workspace, repoSlug, hash string) (*models.Diffstat, error)
}

// GroupDirectory resolves students and the people of their project groups
type GroupDirectory interface {
	GetStudent(id string) (*models.Student, error)
	ListStudents() ([]*models.Student, error)
	Candidates(studentID string) ([]models.Person, error)
	Aliases(studentID string) ([]*models.ContributorAlias, error)
}

type DashboardService struct {
	source   CommitSource
	groups   GroupDirectory
	stats    *ContributionStatsService
	pool     *workers.Pool
	fallback OwnerFallbackPolicy
}

func NewDashboardService(
	source CommitSource,
	groups GroupDirectory,
	stats *ContributionStatsService,
	pool *workers.Pool,
	fallback OwnerFallbackPolicy,
) *DashboardService {
	return &DashboardService{
		source:   source,
		groups:   groups,
		stats:    stats,
		pool:     pool,
		fallback: fallback,
	}
}

// Repositories lists the repositories of the student's workspace
func (s *DashboardService) Repositories(ctx context.Context, studentID string) ([]models.Repository, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}
	return s.source.ListRepositories(ctx, student.BitbucketToken, student.Workspace)
}

// RepositoryCommits returns the commits of one repository attributed to the student's group.
// Diffstats are fetched through the pool; a failed diffstat leaves that commit without one.
func (s *DashboardService) RepositoryCommits(ctx context.Context, studentID, repoSlug string, withDiffstat bool) ([]models.MatchedCommit, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	commits, err := s.source.ListCommits(ctx, student.BitbucketToken, student.Workspace, repoSlug)
	if err != nil {
		return nil, err
	}
	if withDiffstat {
		s.attachDiffstats(ctx, student, repoSlug, commits)
	}

	return s.matcher(student).Annotate(commits), nil
}

// RepositoryContributors aggregates the commits of one repository
func (s *DashboardService) RepositoryContributors(ctx context.Context, studentID, repoSlug string, withDiffstat bool) (*models.ContributionReport, error) {
	commits, err := s.RepositoryCommits(ctx, studentID, repoSlug, withDiffstat)
	if err != nil {
		return nil, err
	}
	return s.stats.Aggregate(commits), nil
}

// WorkspaceReport aggregates every repository of the student's workspace. Repositories that
// fail upstream are listed in the report's errors; the rest are still aggregated.
func (s *DashboardService) WorkspaceReport(ctx context.Context, studentID string) (*models.WorkspaceReport, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaceReport(ctx, student)
	if err != nil {
		return nil, err
	}
	return ws.report, nil
}

// DeveloperCommits returns the workspace commits attributed to one person of the group along
// with the repositories that failed upstream. The default attribution is only applied when
// every repository was read; when none could be read the first upstream error is returned.
func (s *DashboardService) DeveloperCommits(ctx context.Context, studentID, developer string) (*models.DeveloperCommits, error) {
	student, err := s.student(studentID)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaceReport(ctx, student)
	if err != nil {
		return nil, err
	}
	if len(ws.failures) > 0 && len(ws.failures) == len(ws.report.Repositories) {
		return nil, fmt.Errorf("failed to read any repository of %s: %w", student.Workspace, ws.failures[0])
	}

	commits := ws.commits
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date.After(commits[j].Date)
	})

	policy := s.fallback
	if len(ws.failures) > 0 {
		policy.Enabled = false
	}

	return &models.DeveloperCommits{
		Developer: developer,
		Commits:   policy.DeveloperCommits(developer, s.candidates(student), commits),
		Errors:    ws.report.Errors,
	}, nil
}

// Overview builds one report per registered student. Workspaces are processed one after
// another, each fanning its repositories out through the pool, so the upstream never sees
// more than the pool limit at once. A failing workspace is reported and skipped.
func (s *DashboardService) Overview(ctx context.Context) ([]*models.WorkspaceReport, error) {
	students, err := s.groups.ListStudents()
	if err != nil {
		return nil, err
	}

	reports := make([]*models.WorkspaceReport, 0, len(students))
	for _, student := range students {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var report *models.WorkspaceReport
		ws, err := s.workspaceReport(ctx, student)
		if err == nil {
			report = ws.report
		} else {
			logger.ForWorkspace(student.ID, student.Workspace).WithError(err).Warn("Workspace report failed")
			report = &models.WorkspaceReport{
				StudentID:    student.ID,
				StudentName:  student.Name,
				Workspace:    student.Workspace,
				Repositories: []string{},
				Report:       s.stats.Aggregate(nil),
				Errors:       []models.RepositoryError{{Repository: "*", Error: err.Error()}},
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// workspaceResult is one read of a workspace: the report, the matched commits behind it and
// the upstream errors of the repositories listed in report.Errors
type workspaceResult struct {
	report   *models.WorkspaceReport
	commits  []models.MatchedCommit
	failures []error
}

func (s *DashboardService) workspaceReport(ctx context.Context, student *models.Student) (*workspaceResult, error) {
	if strings.TrimSpace(student.Workspace) == "" {
		return nil, ErrWorkspaceNotConfigured
	}

	repos, err := s.source.ListRepositories(ctx, student.BitbucketToken, student.Workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", student.Workspace, err)
	}

	perRepo, errs := workers.Map(ctx, s.pool, repos, func(ctx context.Context, repo models.Repository) ([]models.Commit, error) {
		return s.source.ListCommits(ctx, student.BitbucketToken, student.Workspace, repo.Slug)
	})

	report := &models.WorkspaceReport{
		StudentID:    student.ID,
		StudentName:  student.Name,
		Workspace:    student.Workspace,
		Repositories: make([]string, 0, len(repos)),
	}

	var commits []models.Commit
	var failures []error
	for i, repo := range repos {
		report.Repositories = append(report.Repositories, repo.Slug)
		if errs[i] != nil {
			logger.ForWorkspace(student.ID, student.Workspace).
				WithField("repository", repo.Slug).
				WithError(errs[i]).
				Warn("Failed to fetch repository commits")
			report.Errors = append(report.Errors, models.RepositoryError{Repository: repo.Slug, Error: errs[i].Error()})
			failures = append(failures, errs[i])
			continue
		}
		commits = append(commits, perRepo[i]...)
	}

	matched := s.matcher(student).Annotate(commits)
	report.Report = s.stats.Aggregate(matched)
	return &workspaceResult{report: report, commits: matched, failures: failures}, nil
}

func (s *DashboardService) attachDiffstats(ctx context.Context, student *models.Student, repoSlug string, commits []models.Commit) {
	diffstats, errs := workers.Map(ctx, s.pool, commits, func(ctx context.Context, c models.Commit) (*models.Diffstat, error) {
		return s.source.GetDiffstat(ctx, student.BitbucketToken, student.Workspace, repoSlug, c.Hash)
	})
	for i := range commits {
		if errs[i] != nil {
			logger.ForWorkspace(student.ID, student.Workspace).
				WithField("commit", commits[i].Hash).
				WithError(errs[i]).
				Debug("Diffstat unavailable")
			continue
		}
		commits[i].Diffstat = diffstats[i]
	}
}

func (s *DashboardService) student(id string) (*models.Student, error) {
	student, err := s.groups.GetStudent(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(student.Workspace) == "" {
		return nil, ErrWorkspaceNotConfigured
	}
	return student, nil
}

// candidates degrades to an empty roster so commits still show up unmatched
func (s *DashboardService) candidates(student *models.Student) []models.Person {
	people, err := s.groups.Candidates(student.ID)
	if err != nil {
		logger.ForWorkspace(student.ID, student.Workspace).WithError(err).Warn("Roster unavailable, commits stay unmatched")
		return nil
	}
	return people
}

func (s *DashboardService) matcher(student *models.Student) *matching.Matcher {
	aliases, err := s.groups.Aliases(student.ID)
	if err != nil {
		logger.ForWorkspace(student.ID, student.Workspace).WithError(err).Warn("Alias table unavailable")
		aliases = nil
	}
	return matching.NewMatcher(s.candidates(student), aliases)
}
