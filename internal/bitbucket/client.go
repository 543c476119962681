package bitbucket

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alimgiray/coursetrack/internal/cache"
	"github.com/alimgiray/coursetrack/internal/models"
	"github.com/alimgiray/coursetrack/pkg/logger"
	"golang.org/x/oauth2"
)

const pageLen = 100

// Client talks to the Bitbucket Cloud REST API on behalf of the token passed to each call
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

// NewClient creates a client. httpClient is the base transport the OAuth2 bearer transport
// wraps; nil uses http.DefaultClient. responses may be nil to disable caching.
func NewClient(baseURL string, httpClient *http.Client, responses *cache.Cache) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if responses == nil {
		responses = cache.Disabled()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      responses,
	}
}

type page[T any] struct {
	Values []T    `json:"values"`
	Next   string `json:"next"`
}

type apiRepository struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description"`
	IsPrivate   bool       `json:"is_private"`
	UpdatedOn   *time.Time `json:"updated_on"`
}

type apiCommit struct {
	Hash    string    `json:"hash"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	Author  struct {
		Raw string `json:"raw"`
	} `json:"author"`
}

type apiDiffstat struct {
	Status       string `json:"status"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
	Old          *struct {
		Path string `json:"path"`
	} `json:"old"`
	New *struct {
		Path string `json:"path"`
	} `json:"new"`
}

// User is the authenticated Bitbucket account
type User struct {
	UUID        string `json:"uuid"`
	AccountID   string `json:"account_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type apiEmail struct {
	Email       string `json:"email"`
	IsPrimary   bool   `json:"is_primary"`
	IsConfirmed bool   `json:"is_confirmed"`
}

// ListRepositories returns every repository of a workspace
func (c *Client) ListRepositories(ctx context.Context, token, workspace string) ([]models.Repository, error) {
	endpoint := fmt.Sprintf("%s/repositories/%s?pagelen=%d", c.baseURL, url.PathEscape(workspace), pageLen)
	values, err := fetchAll[apiRepository](ctx, c, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", workspace, err)
	}

	repos := make([]models.Repository, 0, len(values))
	for _, r := range values {
		repos = append(repos, models.Repository{
			Slug:        r.Slug,
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
			IsPrivate:   r.IsPrivate,
			UpdatedOn:   r.UpdatedOn,
		})
	}
	return repos, nil
}

// ListCommits returns every commit of a repository, newest first as Bitbucket orders them
func (c *Client) ListCommits(ctx context.Context, token, workspace, repoSlug string) ([]models.Commit, error) {
	endpoint := fmt.Sprintf("%s/repositories/%s/%s/commits?pagelen=%d",
		c.baseURL, url.PathEscape(workspace), url.PathEscape(repoSlug), pageLen)
	values, err := fetchAll[apiCommit](ctx, c, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of %s/%s: %w", workspace, repoSlug, err)
	}

	commits := make([]models.Commit, 0, len(values))
	for _, v := range values {
		commits = append(commits, models.Commit{
			Hash:       v.Hash,
			Message:    v.Message,
			Date:       v.Date,
			AuthorRaw:  v.Author.Raw,
			Repository: repoSlug,
		})
	}
	return commits, nil
}

// GetDiffstat returns per-file line counts for one commit
func (c *Client) GetDiffstat(ctx context.Context, token, workspace, repoSlug, hash string) (*models.Diffstat, error) {
	endpoint := fmt.Sprintf("%s/repositories/%s/%s/diffstat/%s?pagelen=%d",
		c.baseURL, url.PathEscape(workspace), url.PathEscape(repoSlug), url.PathEscape(hash), pageLen)
	values, err := fetchAll[apiDiffstat](ctx, c, token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get diffstat of %s in %s/%s: %w", hash, workspace, repoSlug, err)
	}

	files := make([]models.FileChange, 0, len(values))
	for _, v := range values {
		change := models.FileChange{
			Status:       v.Status,
			LinesAdded:   v.LinesAdded,
			LinesRemoved: v.LinesRemoved,
		}
		// deleted files only carry the old path
		if v.New != nil {
			change.Path = v.New.Path
		} else if v.Old != nil {
			change.Path = v.Old.Path
		}
		files = append(files, change)
	}
	return models.NewDiffstat(files), nil
}

// GetCurrentUser returns the account the token belongs to, with its primary email when visible
func (c *Client) GetCurrentUser(ctx context.Context, token string) (*User, string, error) {
	body, err := c.fetch(ctx, token, c.baseURL+"/user", false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user info: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal user data: %w", err)
	}

	// the email scope is optional, a missing email is not an error
	emails, err := fetchAll[apiEmail](ctx, c, token, c.baseURL+"/user/emails")
	if err != nil {
		logger.WithError(err).WithField("username", user.Username).Warn("Could not read Bitbucket emails")
		return &user, "", nil
	}
	for _, e := range emails {
		if e.IsPrimary {
			return &user, e.Email, nil
		}
	}
	return &user, "", nil
}

// fetchAll follows "next" links until the last page
func fetchAll[T any](ctx context.Context, c *Client, token, endpoint string) ([]T, error) {
	var all []T
	for endpoint != "" {
		body, err := c.fetch(ctx, token, endpoint, true)
		if err != nil {
			return nil, err
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("failed to decode page %s: %w", endpoint, err)
		}
		all = append(all, p.Values...)
		endpoint = p.Next
	}
	return all, nil
}

// fetch performs one authenticated GET. Cached bodies are keyed by URL and a token
// fingerprint so one caller never sees another caller's private data.
func (c *Client) fetch(ctx context.Context, token, endpoint string, cacheable bool) ([]byte, error) {
	load := func() ([]byte, error) {
		return c.do(ctx, token, endpoint)
	}
	if !cacheable {
		return load()
	}
	return c.cache.GetOrLoad(c.cache.Key(endpoint, fingerprint(token)), load)
}

func (c *Client) do(ctx context.Context, token, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.authorized(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Message:    errorMessage(body),
		}
	}

	logger.WithField("url", endpoint).Debug("Fetched from Bitbucket")
	return body, nil
}

// authorized wraps the base client with a bearer token transport
func (c *Client) authorized(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error.Message
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
