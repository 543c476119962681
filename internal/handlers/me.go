package handlers

import (
	"net/http"

	"github.com/alimgiray/coursetrack/internal/middleware"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/gin-gonic/gin"
)

// MeHandler serves the logged in student's own group
type MeHandler struct {
	roster    *services.RosterService
	dashboard *services.DashboardService
}

func NewMeHandler(roster *services.RosterService, dashboard *services.DashboardService) *MeHandler {
	return &MeHandler{
		roster:    roster,
		dashboard: dashboard,
	}
}

type updateWorkspaceRequest struct {
	Workspace string `json:"workspace" binding:"required"`
	Token     string `json:"token"`
}

type teamMemberRequest struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Username string `json:"bitbucket_username"`
}

func studentID(c *gin.Context) string {
	return middleware.GetSession(c).StudentID
}

func withDiffstat(c *gin.Context) bool {
	v := c.Query("diffstat")
	return v == "1" || v == "true"
}

// Profile returns the student and their declared team
func (h *MeHandler) Profile(c *gin.Context) {
	student, err := h.roster.GetStudent(studentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	members, err := h.roster.ListTeamMembers(student.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student":      student,
		"team_members": members,
		"is_admin":     middleware.GetSession(c).IsAdmin,
	})
}

func (h *MeHandler) UpdateWorkspace(c *gin.Context) {
	var req updateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrBadRequest("workspace is required"))
		return
	}

	id := studentID(c)
	token := req.Token
	if token == "" {
		// keep the token from the last login
		student, err := h.roster.GetStudent(id)
		if err != nil {
			respondError(c, err)
			return
		}
		token = student.BitbucketToken
	}

	if err := h.roster.UpdateWorkspace(id, req.Workspace, token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workspace": req.Workspace})
}

func (h *MeHandler) ListTeamMembers(c *gin.Context) {
	members, err := h.roster.ListTeamMembers(studentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team_members": members})
}

func (h *MeHandler) AddTeamMember(c *gin.Context) {
	var req teamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrBadRequest("name and role are required"))
		return
	}

	member, err := h.roster.AddTeamMember(studentID(c), req.Name, req.Role, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *MeHandler) Repositories(c *gin.Context) {
	repos, err := h.dashboard.Repositories(c.Request.Context(), studentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repositories": repos})
}

func (h *MeHandler) RepositoryCommits(c *gin.Context) {
	commits, err := h.dashboard.RepositoryCommits(c.Request.Context(), studentID(c), c.Param("repo"), withDiffstat(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commits": commits})
}

func (h *MeHandler) RepositoryContributors(c *gin.Context) {
	report, err := h.dashboard.RepositoryContributors(c.Request.Context(), studentID(c), c.Param("repo"), withDiffstat(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *MeHandler) Report(c *gin.Context) {
	report, err := h.dashboard.WorkspaceReport(c.Request.Context(), studentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *MeHandler) DeveloperCommits(c *gin.Context) {
	result, err := h.dashboard.DeveloperCommits(c.Request.Context(), studentID(c), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
