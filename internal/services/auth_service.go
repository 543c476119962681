package services

import (
	"context"
	"fmt"

	"github.com/alimgiray/coursetrack/internal/bitbucket"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/pkg/config"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"golang.org/x/oauth2"
	oauthbitbucket "golang.org/x/oauth2/bitbucket"
)

// AccountSource resolves the Bitbucket account behind an access token
type AccountSource interface {
	GetCurrentUser(ctx context.Context, token string) (*bitbucket.User, string, error)
}

// LoginResult is what the session layer needs after a successful OAuth callback
type LoginResult struct {
	Student    *models.Student
	IsAdmin    bool
	Registered bool
}

type AuthService struct {
	oauthConfig *oauth2.Config
	accounts    AccountSource
	roster      *RosterService
	cfg         *config.Config
}

func NewAuthService(cfg *config.Config, accounts AccountSource, roster *RosterService) *AuthService {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Bitbucket.ClientID,
		ClientSecret: cfg.Bitbucket.ClientSecret,
		RedirectURL:  cfg.Bitbucket.CallbackURL,
		Scopes: []string{
			"account",    // profile and email addresses
			"repository", // read access to workspace repositories and commits
		},
		Endpoint: oauthbitbucket.Endpoint,
	}

	return &AuthService{
		oauthConfig: oauthConfig,
		accounts:    accounts,
		roster:      roster,
		cfg:         cfg,
	}
}

// GetAuthURL returns the Bitbucket OAuth authorization URL
func (s *AuthService) GetAuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCodeForToken exchanges authorization code for access token
func (s *AuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// Login finishes the OAuth flow: it exchanges the code, enrolls the student on first login
// and stores the fresh access token for upstream reads
func (s *AuthService) Login(ctx context.Context, code string) (*LoginResult, error) {
	token, err := s.ExchangeCodeForToken(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.LoginWithToken(ctx, token.AccessToken)
}

// LoginWithToken is Login after the code exchange
func (s *AuthService) LoginWithToken(ctx context.Context, accessToken string) (*LoginResult, error) {
	user, email, err := s.accounts.GetCurrentUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	name := user.DisplayName
	if name == "" {
		name = user.Username
	}

	student, registered, err := s.roster.GetOrRegisterStudent(name, email, user.Username)
	if err != nil {
		return nil, err
	}

	if err := s.roster.UpdateWorkspace(student.ID, student.Workspace, accessToken); err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}
	student.BitbucketToken = accessToken

	logger.WithField("username", user.Username).WithField("registered", registered).Info("Student logged in")

	return &LoginResult{
		Student:    student,
		IsAdmin:    s.cfg.IsAdmin(user.Username),
		Registered: registered,
	}, nil
}
