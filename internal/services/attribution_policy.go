package services

import (
	"github.com/alimgiray/coursetrack/internal/matching"
	"github.com/alimgiray/coursetrack/internal/models"
)

const (
	defaultAttributionMessageSuffix = " (attributed by default)"
	defaultAttributionAuthorSuffix  = " [default attribution]"
)

// OwnerFallbackPolicy decides what a developer's commit list shows when nothing was
// attributed to them. When enabled, a registered developer with no commits is shown the most
// recent commit of the workspace, clearly marked as a default attribution.
type OwnerFallbackPolicy struct {
	Enabled bool
}

func NewOwnerFallbackPolicy(enabled bool) OwnerFallbackPolicy {
	return OwnerFallbackPolicy{Enabled: enabled}
}

// DeveloperCommits filters commits attributed to developer and applies the fallback
func (p OwnerFallbackPolicy) DeveloperCommits(developer string, candidates []models.Person, commits []models.MatchedCommit) []models.MatchedCommit {
	target := matching.Normalize(developer)

	matched := []models.MatchedCommit{}
	for _, c := range commits {
		if c.MatchedName != nil && matching.Normalize(*c.MatchedName) == target {
			matched = append(matched, c)
		}
	}
	if len(matched) > 0 || !p.Enabled {
		return matched
	}

	var person *models.Person
	for i := range candidates {
		if matching.Normalize(candidates[i].Name) == target {
			person = &candidates[i]
			break
		}
	}
	if person == nil || len(commits) == 0 {
		return matched
	}

	latest := commits[0]
	for _, c := range commits[1:] {
		if c.Date.After(latest.Date) {
			latest = c
		}
	}

	name := person.Name
	synthetic := latest
	synthetic.Message = latest.Message + defaultAttributionMessageSuffix
	synthetic.AuthorName = name + defaultAttributionAuthorSuffix
	synthetic.MatchedName = &name
	synthetic.MatchType = nil
	synthetic.Synthetic = true

	return []models.MatchedCommit{synthetic}
}
