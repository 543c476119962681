package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet      = "Summary"
	maxSheetNameRunes = 31
)

var contributorHeader = []interface{}{
	"Contributor", "Matched", "Match type", "Total", "Today", "Last 7 days", "Last 30 days",
	"Share %", "Lines added", "Lines removed", "Last commit",
}

// ExportService renders the admin overview as a spreadsheet
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ContributorsWorkbook writes a summary sheet plus one contributor sheet per student
func (s *ExportService) ContributorsWorkbook(overview []*models.WorkspaceReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	summary := [][]interface{}{{"Student", "Workspace", "Repositories", "Total commits", "Contributors", "Errors"}}
	used := map[string]bool{strings.ToLower(summarySheet): true}

	for _, ws := range overview {
		report := ws.Report
		if report == nil {
			report = &models.ContributionReport{}
		}
		summary = append(summary, []interface{}{
			ws.StudentName, ws.Workspace, len(ws.Repositories), report.TotalCommits, len(report.Contributors), len(ws.Errors),
		})

		name := sheetName(ws.StudentName, ws.Workspace, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		rows := [][]interface{}{contributorHeader}
		for _, c := range report.Contributors {
			matchType := ""
			if c.MatchType != nil {
				matchType = string(*c.MatchType)
			}
			lastCommit := ""
			if !c.LastCommitAt.IsZero() {
				lastCommit = c.LastCommitAt.UTC().Format("2006-01-02 15:04")
			}
			rows = append(rows, []interface{}{
				c.Name, c.Matched, matchType, c.TotalCommits, c.TodayCommits, c.LastWeekCommits,
				c.LastMonthCommits, c.Percentage, c.LinesAdded, c.LinesRemoved, lastCommit,
			})
		}
		for _, e := range ws.Errors {
			rows = append(rows, []interface{}{"error: " + e.Repository, e.Error})
		}

		if err := writeRows(f, name, rows, bold); err != nil {
			return nil, err
		}
	}

	if err := writeRows(f, summarySheet, summary, bold); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}

// sheetName derives a unique, valid worksheet name
func sheetName(studentName, workspace string, used map[string]bool) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(studentName))
	base = strings.Trim(base, "'")
	if base == "" {
		base = workspace
	}
	if base == "" {
		base = "Student"
	}
	base = truncateRunes(base, maxSheetNameRunes)

	name := base
	for i := 2; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetNameRunes-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
