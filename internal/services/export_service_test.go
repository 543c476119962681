package services

import (
	"testing"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestContributorsWorkbook(t *testing.T) {
	exact := models.MatchExact
	overview := []*models.WorkspaceReport{
		{
			StudentName:  "Kavindu Perera",
			Workspace:    "kavindu",
			Repositories: []string{"api"},
			Report: &models.ContributionReport{
				TotalCommits: 3,
				Contributors: []*models.ContributorStats{
					{Name: "Kavindu Perera", Matched: true, MatchType: &exact, TotalCommits: 3, Percentage: "100.0"},
				},
			},
		},
		{
			StudentName: "Kavindu Perera",
			Workspace:   "kavindu-2",
			Errors:      []models.RepositoryError{{Repository: "*", Error: "unauthorized"}},
		},
		{
			StudentName: "A/B: [team]?",
			Workspace:   "ab",
			Report:      &models.ContributionReport{},
		},
	}

	buf, err := NewExportService().ContributorsWorkbook(overview)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Kavindu Perera", "Kavindu Perera (2)", "A_B_ _team__"}, f.GetSheetList())

	total, err := f.GetCellValue("Summary", "D2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	name, err := f.GetCellValue("Kavindu Perera", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Kavindu Perera", name)

	matchType, err := f.GetCellValue("Kavindu Perera", "C2")
	require.NoError(t, err)
	assert.Equal(t, "exact", matchType)

	errCell, err := f.GetCellValue("Kavindu Perera (2)", "A2")
	require.NoError(t, err)
	assert.Equal(t, "error: *", errCell)
}

func TestSheetNameTruncates(t *testing.T) {
	used := map[string]bool{}
	long := "Aaaaaaaaaa Bbbbbbbbbb Cccccccccc Dddddddddd"

	first := sheetName(long, "ws", used)
	second := sheetName(long, "ws", used)

	assert.Len(t, []rune(first), 31)
	assert.Len(t, []rune(second), 31)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "Student", sheetName("  ", "", used))
}
