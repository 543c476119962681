package handlers

import (
	"net/http"

	"github.com/alimgiray/coursetrack/internal/middleware"
	"github.com/alimgiray/coursetrack/internal/services"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login describes how to log in and echoes a failed callback's error
func (h *AuthHandler) Login(c *gin.Context) {
	session := middleware.GetSession(c)

	c.JSON(http.StatusOK, gin.H{
		"logged_in": session != nil,
		"login_url": "/auth/bitbucket",
		"error":     c.Query("error"),
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/login")
}

// BitbucketLogin initiates Bitbucket OAuth flow
func (h *AuthHandler) BitbucketLogin(c *gin.Context) {
	state := uuid.New().String()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.authService.GetAuthURL(state))
}

// BitbucketCallback handles Bitbucket OAuth callback
func (h *AuthHandler) BitbucketCallback(c *gin.Context) {
	expected, err := c.Cookie(stateCookie)
	if err != nil || expected == "" || expected != c.Query("state") {
		c.Redirect(http.StatusFound, "/login?error=invalid_state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/login?error=no_code")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), code)
	if err != nil {
		logger.WithError(err).Warn("Bitbucket login failed")
		c.Redirect(http.StatusFound, "/login?error=login_failed")
		return
	}

	if err := middleware.SetSession(c, result.Student.ID, result.Student.BitbucketUsername, result.IsAdmin); err != nil {
		c.Redirect(http.StatusFound, "/login?error=session_creation_failed")
		return
	}

	c.Redirect(http.StatusFound, "/api/me")
}
