package models

// MatchType records which rule attributed a commit author to a person
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchPartial     MatchType = "partial"
	MatchUsername    MatchType = "username"
	MatchFirstName   MatchType = "first-name"
	MatchSpecialCase MatchType = "special-case"
)

// MatchResult is the outcome of matching one commit author against a group's candidates.
// A nil Person means no candidate matched.
type MatchResult struct {
	Person *Person   `json:"matched_person"`
	Type   MatchType `json:"match_type,omitempty"`
}

// Matched reports whether a candidate was found
func (r MatchResult) Matched() bool {
	return r.Person != nil
}

// MatchedCommit is a commit annotated with the person it was attributed to
type MatchedCommit struct {
	Commit
	AuthorName  string     `json:"author_name"`
	MatchedName *string    `json:"matched_name"`
	MatchType   *MatchType `json:"match_type"`
	Synthetic   bool       `json:"synthetic,omitempty"`
}

// NewMatchedCommit annotates a commit. authorName is the label used when nothing matched.
func NewMatchedCommit(commit Commit, authorName string, result MatchResult) MatchedCommit {
	mc := MatchedCommit{Commit: commit, AuthorName: authorName}
	if result.Matched() {
		name := result.Person.Name
		matchType := result.Type
		mc.AuthorName = name
		mc.MatchedName = &name
		mc.MatchType = &matchType
	}
	return mc
}
