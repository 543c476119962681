package matching

import (
	"strings"

	"github.com/alimgiray/coursetrack/internal/models"
)

type candidate struct {
	person   models.Person
	name     string
	first    string
	username string
}

type rule struct {
	matchType models.MatchType
	pick      func(m *Matcher, author Author) int
}

// rules are tried in order across all candidates; the first rule that picks a candidate wins
var rules = []rule{
	{models.MatchExact, (*Matcher).pickExact},
	{models.MatchPartial, (*Matcher).pickPartial},
	{models.MatchUsername, (*Matcher).pickUsername},
	{models.MatchFirstName, (*Matcher).pickFirstName},
	{models.MatchSpecialCase, (*Matcher).pickAlias},
}

// Matcher attributes commit authors to the people of one project group
type Matcher struct {
	candidates []candidate
	// aliases maps a normalized Bitbucket account name to a normalized person name
	aliases map[string]string
}

// NewMatcher prepares a matcher for one group. Candidate order is the tie-break order.
func NewMatcher(people []models.Person, aliases []*models.ContributorAlias) *Matcher {
	m := &Matcher{
		candidates: make([]candidate, 0, len(people)),
		aliases:    make(map[string]string, len(aliases)),
	}
	for _, p := range people {
		name := Normalize(p.Name)
		m.candidates = append(m.candidates, candidate{
			person:   p,
			name:     name,
			first:    FirstToken(name),
			username: Normalize(p.DeclaredUsername),
		})
	}
	for _, a := range aliases {
		key := Normalize(a.BitbucketUsername)
		if key == "" {
			continue
		}
		if _, exists := m.aliases[key]; !exists {
			m.aliases[key] = Normalize(a.PersonName)
		}
	}
	return m
}

// Match is a convenience for matching one author without an alias table
func Match(authorRaw string, people []models.Person) models.MatchResult {
	return NewMatcher(people, nil).Match(authorRaw)
}

// Match resolves a raw commit author to at most one candidate
func (m *Matcher) Match(authorRaw string) models.MatchResult {
	if len(m.candidates) == 0 {
		return models.MatchResult{}
	}

	author := ParseAuthor(authorRaw)
	for _, r := range rules {
		if idx := r.pick(m, author); idx >= 0 {
			person := m.candidates[idx].person
			return models.MatchResult{Person: &person, Type: r.matchType}
		}
	}
	return models.MatchResult{}
}

// Annotate matches every commit. Unmatched commits keep their raw display name as label.
func (m *Matcher) Annotate(commits []models.Commit) []models.MatchedCommit {
	annotated := make([]models.MatchedCommit, 0, len(commits))
	for _, c := range commits {
		annotated = append(annotated, models.NewMatchedCommit(c, DisplayLabel(c.AuthorRaw), m.Match(c.AuthorRaw)))
	}
	return annotated
}

// Candidates returns the group's people in tie-break order
func (m *Matcher) Candidates() []models.Person {
	people := make([]models.Person, 0, len(m.candidates))
	for _, c := range m.candidates {
		people = append(people, c.person)
	}
	return people
}

func (m *Matcher) pickExact(author Author) int {
	if author.DisplayName == "" {
		return -1
	}
	for i, c := range m.candidates {
		if c.name == author.DisplayName {
			return i
		}
	}
	return -1
}

// pickPartial prefers the longest candidate name so "Ann Lee" beats "Ann" for "Ann Lee-Smith"
func (m *Matcher) pickPartial(author Author) int {
	if author.DisplayName == "" {
		return -1
	}
	best := -1
	for i, c := range m.candidates {
		if c.name == "" {
			continue
		}
		if !strings.Contains(author.DisplayName, c.name) && !strings.Contains(c.name, author.DisplayName) {
			continue
		}
		if best < 0 || len(c.name) > len(m.candidates[best].name) {
			best = i
		}
	}
	return best
}

func (m *Matcher) pickUsername(author Author) int {
	handle := author.handle()
	if handle == "" {
		return -1
	}
	for i, c := range m.candidates {
		if c.username == "" {
			continue
		}
		if strings.Contains(handle, c.username) || strings.Contains(c.username, handle) {
			return i
		}
	}
	return -1
}

func (m *Matcher) pickFirstName(author Author) int {
	first := FirstToken(author.DisplayName)
	if first == "" {
		return -1
	}
	for i, c := range m.candidates {
		if c.first == first {
			return i
		}
	}
	return -1
}

func (m *Matcher) pickAlias(author Author) int {
	if len(m.aliases) == 0 {
		return -1
	}
	for _, key := range []string{author.Username, author.DisplayName, author.handle()} {
		if key == "" {
			continue
		}
		target, ok := m.aliases[key]
		if !ok {
			continue
		}
		for i, c := range m.candidates {
			if c.name == target {
				return i
			}
		}
	}
	return -1
}
