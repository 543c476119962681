package models

import "time"

// ContributorStats are the per-person counters of a contribution report
type ContributorStats struct {
	Name             string     `json:"name"`
	Matched          bool       `json:"matched"`
	MatchType        *MatchType `json:"match_type"`
	TotalCommits     int        `json:"total_commits"`
	TodayCommits     int        `json:"today_commits"`
	LastWeekCommits  int        `json:"last_week_commits"`
	LastMonthCommits int        `json:"last_month_commits"`
	Percentage       string     `json:"percentage"`
	LinesAdded       int        `json:"lines_added"`
	LinesRemoved     int        `json:"lines_removed"`
	LastCommitAt     time.Time  `json:"last_commit_at"`
}

// TimelineBucket counts commits of one UTC calendar day
type TimelineBucket struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	ByPerson map[string]int `json:"by_person"`
}

// ContributionReport is the aggregated view of a set of matched commits
type ContributionReport struct {
	TotalCommits int                 `json:"total_commits"`
	Contributors []*ContributorStats `json:"contributors"`
	Timeline     []*TimelineBucket   `json:"timeline"`
	GeneratedAt  time.Time           `json:"generated_at"`
}

// RepositoryError records an upstream failure for one repository or workspace without
// failing the surrounding aggregation
type RepositoryError struct {
	Repository string `json:"repository"`
	Error      string `json:"error"`
}

// WorkspaceReport aggregates all repositories of a student's workspace
type WorkspaceReport struct {
	StudentID    string              `json:"student_id"`
	StudentName  string              `json:"student_name"`
	Workspace    string              `json:"workspace"`
	Repositories []string            `json:"repositories"`
	Report       *ContributionReport `json:"report"`
	Errors       []RepositoryError   `json:"errors,omitempty"`
}

// DeveloperCommits lists the commits attributed to one person of a group together with the
// repositories that could not be read
type DeveloperCommits struct {
	Developer string            `json:"developer"`
	Commits   []MatchedCommit   `json:"commits"`
	Errors    []RepositoryError `json:"errors,omitempty"`
}
