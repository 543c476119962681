package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the lecturer views across every registered group
type AdminHandler struct {
	roster    *services.RosterService
	aliases   *services.AliasService
	dashboard *services.DashboardService
	export    *services.ExportService
}

func NewAdminHandler(
	roster *services.RosterService,
	aliases *services.AliasService,
	dashboard *services.DashboardService,
	export *services.ExportService,
) *AdminHandler {
	return &AdminHandler{
		roster:    roster,
		aliases:   aliases,
		dashboard: dashboard,
		export:    export,
	}
}

type aliasRequest struct {
	BitbucketUsername string `json:"bitbucket_username" binding:"required"`
	PersonName        string `json:"person_name" binding:"required"`
}

type studentEntry struct {
	*models.Student
	TeamMembers []*models.TeamMember `json:"team_members"`
}

func (h *AdminHandler) ListStudents(c *gin.Context) {
	students, err := h.roster.ListStudents()
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]studentEntry, 0, len(students))
	for _, s := range students {
		members, err := h.roster.ListTeamMembers(s.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		entries = append(entries, studentEntry{Student: s, TeamMembers: members})
	}
	c.JSON(http.StatusOK, gin.H{"students": entries})
}

func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	if err := h.roster.DeleteStudent(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	logger.WithField("student_id", c.Param("id")).Info("Student deleted")
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteTeamMember(c *gin.Context) {
	if err := h.roster.DeleteTeamMember(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) StudentReport(c *gin.Context) {
	report, err := h.dashboard.WorkspaceReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) RepositoryContributors(c *gin.Context) {
	report, err := h.dashboard.RepositoryContributors(c.Request.Context(), c.Param("id"), c.Param("repo"), withDiffstat(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) DeveloperCommits(c *gin.Context) {
	result, err := h.dashboard.DeveloperCommits(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) ListAliases(c *gin.Context) {
	aliases, err := h.aliases.ListAliases(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"aliases": aliases})
}

func (h *AdminHandler) CreateAlias(c *gin.Context) {
	var req aliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrBadRequest("bitbucket_username and person_name are required"))
		return
	}

	alias, err := h.aliases.CreateAlias(c.Param("id"), req.BitbucketUsername, req.PersonName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alias)
}

func (h *AdminHandler) DeleteAlias(c *gin.Context) {
	if err := h.aliases.DeleteAlias(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspaces": overview})
}

// OverviewWorkbook downloads the overview as an XLSX file
func (h *AdminHandler) OverviewWorkbook(c *gin.Context) {
	overview, err := h.dashboard.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.export.ContributorsWorkbook(overview)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("overview-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
