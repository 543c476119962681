package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/models"
)

const timelineDateFormat = "2006-01-02"

// ContributionStatsService folds matched commits into per-person counters and a daily timeline
type ContributionStatsService struct {
	now func() time.Time
}

func NewContributionStatsService() *ContributionStatsService {
	return &ContributionStatsService{now: time.Now}
}

// Aggregate builds a report relative to the current time
func (s *ContributionStatsService) Aggregate(commits []models.MatchedCommit) *models.ContributionReport {
	return s.AggregateAt(commits, s.now())
}

// AggregateAt builds a report relative to now. Counters are keyed by the normalized author label,
// which is the matched person's name or the raw display name of an unmatched author.
func (s *ContributionStatsService) AggregateAt(commits []models.MatchedCommit, now time.Time) *models.ContributionReport {
	now = now.UTC()
	today := now.Format(timelineDateFormat)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	byName := make(map[string]*models.ContributorStats)
	buckets := make(map[string]*models.TimelineBucket)

	for _, commit := range commits {
		// labels differing only in case or spacing are one contributor, shown as first seen
		nameKey := matching.Normalize(commit.AuthorName)
		stats, exists := byName[nameKey]
		if !exists {
			stats = &models.ContributorStats{Name: commit.AuthorName}
			byName[nameKey] = stats
		}

		if commit.MatchType != nil && stats.MatchType == nil {
			matchType := *commit.MatchType
			stats.MatchType = &matchType
		}
		stats.Matched = stats.Matched || commit.MatchedName != nil

		date := commit.Date.UTC()
		stats.TotalCommits++
		if date.Format(timelineDateFormat) == today {
			stats.TodayCommits++
		}
		if !date.Before(weekAgo) {
			stats.LastWeekCommits++
		}
		if !date.Before(monthAgo) {
			stats.LastMonthCommits++
		}
		if date.After(stats.LastCommitAt) {
			stats.LastCommitAt = date
		}
		if commit.Diffstat != nil {
			stats.LinesAdded += commit.Diffstat.LinesAdded
			stats.LinesRemoved += commit.Diffstat.LinesRemoved
		}

		key := date.Format(timelineDateFormat)
		bucket, exists := buckets[key]
		if !exists {
			bucket = &models.TimelineBucket{Date: key, ByPerson: make(map[string]int)}
			buckets[key] = bucket
		}
		bucket.Total++
		bucket.ByPerson[stats.Name]++
	}

	report := &models.ContributionReport{
		TotalCommits: len(commits),
		Contributors: make([]*models.ContributorStats, 0, len(byName)),
		Timeline:     make([]*models.TimelineBucket, 0, len(buckets)),
		GeneratedAt:  now,
	}

	for _, stats := range byName {
		stats.Percentage = percentage(stats.TotalCommits, report.TotalCommits)
		report.Contributors = append(report.Contributors, stats)
	}
	sort.Slice(report.Contributors, func(i, j int) bool {
		a, b := report.Contributors[i], report.Contributors[j]
		if a.TotalCommits != b.TotalCommits {
			return a.TotalCommits > b.TotalCommits
		}
		return a.Name < b.Name
	})

	for _, bucket := range buckets {
		report.Timeline = append(report.Timeline, bucket)
	}
	sort.Slice(report.Timeline, func(i, j int) bool {
		return report.Timeline[i].Date < report.Timeline[j].Date
	})

	return report
}

// percentage formats part/total with one decimal, e.g. "33.3"
func percentage(part, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)*100/float64(total))
}
