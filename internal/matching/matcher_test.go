package matching

import (
	"testing"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(name string) models.Person {
	return models.Person{ID: name, Name: name, Role: models.RoleDeveloper, Kind: models.PersonKindMember}
}

func personWithUsername(name, username string) models.Person {
	p := person(name)
	p.DeclaredUsername = username
	return p
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		name         string
		author       string
		candidates   []models.Person
		expectedName string
		expectedType models.MatchType
	}{
		{
			name:         "Exact name",
			author:       "Kavindu Perera <kavindu.p@x.com>",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchExact,
		},
		{
			name:         "Exact ignores case and spacing",
			author:       "  kavindu   PERERA <kp@x.com>",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchExact,
		},
		{
			name:         "Truncated email still matches the name exactly",
			author:       "Kavindu Perera <kavindu.p@x.co",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchExact,
		},
		{
			name:         "Author name contains candidate name",
			author:       "Kavindu Perera Silva <kps@x.com>",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchPartial,
		},
		{
			name:         "Candidate name contains author name",
			author:       "Perera <kp@x.com>",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchPartial,
		},
		{
			name:         "Declared username in email local part",
			author:       "KP <kavindu99@uni.edu>",
			candidates:   []models.Person{personWithUsername("Kavindu Perera", "Kavindu99")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchUsername,
		},
		{
			name:         "Email local part inside declared username",
			author:       "KP <kav@uni.edu>",
			candidates:   []models.Person{personWithUsername("Kavindu Perera", "kav-dev")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchUsername,
		},
		{
			name:         "Bare account name without email",
			author:       "kavindu99",
			candidates:   []models.Person{personWithUsername("Kavindu Perera", "kavindu99")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchUsername,
		},
		{
			name:         "First name only",
			author:       "Kavindu X <kx@x.com>",
			candidates:   []models.Person{person("Kavindu Perera")},
			expectedName: "Kavindu Perera",
			expectedType: models.MatchFirstName,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Match(tc.author, tc.candidates)

			require.True(t, result.Matched())
			assert.Equal(t, tc.expectedName, result.Person.Name)
			assert.Equal(t, tc.expectedType, result.Type)
		})
	}
}

func TestMatchNoMatch(t *testing.T) {
	testCases := []struct {
		name       string
		author     string
		candidates []models.Person
	}{
		{
			name:       "Initial is not a first name",
			author:     "K. Perera <kp@x.com>",
			candidates: []models.Person{person("Kavindu Perera")},
		},
		{
			name:       "Empty candidate set",
			author:     "John Smith <john@x.com>",
			candidates: []models.Person{},
		},
		{
			name:       "Nil candidate set",
			author:     "John Smith <john@x.com>",
			candidates: nil,
		},
		{
			name:       "Empty author",
			author:     "",
			candidates: []models.Person{person("Kavindu Perera")},
		},
		{
			name:       "Whitespace author",
			author:     "   ",
			candidates: []models.Person{person("Kavindu Perera")},
		},
		{
			name:       "Unrelated author",
			author:     "Jane Doe <jd@x.com>",
			candidates: []models.Person{person("Kavindu Perera"), personWithUsername("Nimal Silva", "nimals")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result models.MatchResult
			assert.NotPanics(t, func() {
				result = Match(tc.author, tc.candidates)
			})
			assert.False(t, result.Matched())
			assert.Nil(t, result.Person)
			assert.Empty(t, result.Type)
		})
	}
}

func TestMatchExactIsAlwaysExact(t *testing.T) {
	names := []string{"Kavindu Perera", "Ann", "Nimal de Silva", "李 小龍"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			candidates := []models.Person{person("Someone Else"), person(name)}
			result := Match(name+" <x@y.z>", candidates)

			require.True(t, result.Matched())
			assert.Equal(t, models.MatchExact, result.Type)
			assert.Equal(t, name, result.Person.Name)
		})
	}
}

func TestMatchPriority(t *testing.T) {
	t.Run("Exact beats partial of an earlier candidate", func(t *testing.T) {
		candidates := []models.Person{person("Ann"), person("Ann Lee")}
		result := Match("Ann Lee <al@x.com>", candidates)

		assert.Equal(t, "Ann Lee", result.Person.Name)
		assert.Equal(t, models.MatchExact, result.Type)
	})

	t.Run("Exact beats first name of an earlier candidate", func(t *testing.T) {
		candidates := []models.Person{person("John Brown"), person("John Smith")}
		result := Match("John Smith <js@x.com>", candidates)

		assert.Equal(t, "John Smith", result.Person.Name)
		assert.Equal(t, models.MatchExact, result.Type)
	})

	t.Run("Exact beats alias", func(t *testing.T) {
		candidates := []models.Person{person("Nimal Silva"), person("Kasun Fernando")}
		aliases := []*models.ContributorAlias{models.NewContributorAlias("s1", "kasun", "Nimal Silva")}
		result := NewMatcher(candidates, aliases).Match("Kasun Fernando <kasun@x.com>")

		assert.Equal(t, "Kasun Fernando", result.Person.Name)
		assert.Equal(t, models.MatchExact, result.Type)
	})

	t.Run("Partial beats username", func(t *testing.T) {
		candidates := []models.Person{personWithUsername("Nimal Silva", "kp"), person("Kavindu Perera")}
		result := Match("Kavindu Perera Jr <kp@x.com>", candidates)

		assert.Equal(t, "Kavindu Perera", result.Person.Name)
		assert.Equal(t, models.MatchPartial, result.Type)
	})

	t.Run("Username beats first name", func(t *testing.T) {
		candidates := []models.Person{person("Kavindu Perera"), personWithUsername("Kavindu Silva", "ksilva")}
		result := Match("Kavindu X <ksilva@x.com>", candidates)

		assert.Equal(t, "Kavindu Silva", result.Person.Name)
		assert.Equal(t, models.MatchUsername, result.Type)
	})
}

func TestMatchTieBreaks(t *testing.T) {
	t.Run("Partial prefers the longest candidate name", func(t *testing.T) {
		candidates := []models.Person{person("Ann"), person("Ann Lee")}
		result := Match("Ann Lee-Smith <als@x.com>", candidates)

		assert.Equal(t, "Ann Lee", result.Person.Name)
		assert.Equal(t, models.MatchPartial, result.Type)
	})

	t.Run("Partial with equal lengths keeps candidate order", func(t *testing.T) {
		candidates := []models.Person{person("Ann Lee"), person("Ann Kim")}
		result := Match("Ann <ann@x.com>", candidates)

		assert.Equal(t, "Ann Lee", result.Person.Name)
	})

	t.Run("First name keeps candidate order", func(t *testing.T) {
		candidates := []models.Person{person("John Brown"), person("John Smith")}
		result := Match("John X <jx@x.com>", candidates)

		assert.Equal(t, "John Brown", result.Person.Name)
		assert.Equal(t, models.MatchFirstName, result.Type)
	})
}

func TestMatchAliases(t *testing.T) {
	candidates := []models.Person{person("Kavindu Perera"), person("Nimal Silva")}
	aliases := []*models.ContributorAlias{
		models.NewContributorAlias("s1", "DarkKnight42", "nimal silva"),
		models.NewContributorAlias("s1", "ghost", "Not In Group"),
	}
	matcher := NewMatcher(candidates, aliases)

	t.Run("Alias by email local part", func(t *testing.T) {
		result := matcher.Match("Batman <darkknight42@users.noreply.bitbucket.org>")

		require.True(t, result.Matched())
		assert.Equal(t, "Nimal Silva", result.Person.Name)
		assert.Equal(t, models.MatchSpecialCase, result.Type)
	})

	t.Run("Alias by bare account name", func(t *testing.T) {
		result := matcher.Match("DarkKnight42")

		require.True(t, result.Matched())
		assert.Equal(t, "Nimal Silva", result.Person.Name)
		assert.Equal(t, models.MatchSpecialCase, result.Type)
	})

	t.Run("Alias to a person outside the group does not match", func(t *testing.T) {
		result := matcher.Match("Casper <ghost@x.com>")

		assert.False(t, result.Matched())
	})
}

func TestAnnotate(t *testing.T) {
	matcher := NewMatcher([]models.Person{person("Kavindu Perera")}, nil)
	commits := []models.Commit{
		{Hash: "a1", AuthorRaw: "kavindu perera <kp@x.com>"},
		{Hash: "b2", AuthorRaw: "Random  Person <rp@x.com>"},
	}

	annotated := matcher.Annotate(commits)

	require.Len(t, annotated, 2)
	assert.Equal(t, "Kavindu Perera", annotated[0].AuthorName)
	require.NotNil(t, annotated[0].MatchedName)
	assert.Equal(t, "Kavindu Perera", *annotated[0].MatchedName)
	assert.Equal(t, models.MatchExact, *annotated[0].MatchType)

	assert.Equal(t, "Random Person", annotated[1].AuthorName)
	assert.Nil(t, annotated[1].MatchedName)
	assert.Nil(t, annotated[1].MatchType)
}
