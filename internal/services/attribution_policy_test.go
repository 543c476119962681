package services

import (
	"testing"
	"time"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerFallbackPolicy(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	candidates := []models.Person{{Name: "Kavindu Perera"}, {Name: "Nimal Silva"}}

	latest := matchedCommit("Kavindu Perera", now)
	latest.Message = "Fix login"
	latest.AuthorRaw = "Kavindu Perera <kavindu@uni.lk>"
	commits := []models.MatchedCommit{
		matchedCommit("Kavindu Perera", now.Add(-time.Hour)),
		latest,
		unmatchedCommit("someone", now.Add(-2*time.Hour)),
	}

	t.Run("developer with commits", func(t *testing.T) {
		got := NewOwnerFallbackPolicy(true).DeveloperCommits("KAVINDU PERERA", candidates, commits)
		assert.Len(t, got, 2)
		for _, c := range got {
			assert.False(t, c.Synthetic)
		}
	})

	t.Run("enabled synthesizes latest commit", func(t *testing.T) {
		got := NewOwnerFallbackPolicy(true).DeveloperCommits("Nimal Silva", candidates, commits)
		require.Len(t, got, 1)

		c := got[0]
		assert.True(t, c.Synthetic)
		assert.Equal(t, "Fix login (attributed by default)", c.Message)
		assert.Equal(t, "Nimal Silva [default attribution]", c.AuthorName)
		assert.Equal(t, "Kavindu Perera <kavindu@uni.lk>", c.AuthorRaw)
		assert.Nil(t, c.MatchType)
		require.NotNil(t, c.MatchedName)
		assert.Equal(t, "Nimal Silva", *c.MatchedName)
		assert.Equal(t, now, c.Date)

		assert.Equal(t, "Fix login", commits[1].Message, "source commit is not modified")
	})

	t.Run("disabled", func(t *testing.T) {
		got := NewOwnerFallbackPolicy(false).DeveloperCommits("Nimal Silva", candidates, commits)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown developer", func(t *testing.T) {
		got := NewOwnerFallbackPolicy(true).DeveloperCommits("Ghost", candidates, commits)
		assert.Empty(t, got)
	})

	t.Run("no commits at all", func(t *testing.T) {
		got := NewOwnerFallbackPolicy(true).DeveloperCommits("Nimal Silva", candidates, nil)
		assert.Empty(t, got)
	})
}
