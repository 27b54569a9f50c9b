// Package reddit mines robot-vacuum discussions from Reddit's read API.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"vacuum-research/utils"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"

	// morechildren accepts at most this many ids per call.
	maxMoreChildren = 100
)

// ErrCredentialMissing aborts a mining run before any network call.
var ErrCredentialMissing = errors.New("reddit: missing API credentials")

// Credentials identify a Reddit "script" application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// Validate reports every empty credential at once.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		missing = append(missing, "REDDIT_USER_AGENT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrCredentialMissing, strings.Join(missing, ", "))
	}
	return nil
}

// Options overrides endpoints and the per-request timeout.
type Options struct {
	AuthURL string
	APIURL  string
	Timeout time.Duration
}

// Submission is a post as returned by listing endpoints.
type Submission struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Score         int     `json:"score"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	URL           string  `json:"url"`
	Subreddit     string  `json:"subreddit"`
	Author        string  `json:"author"`
	LinkFlairText *string `json:"link_flair_text"`
}

// RawComment is a top-level comment before length filtering.
type RawComment struct {
	ID         string
	Body       string
	Score      int
	CreatedUTC float64
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []thing `json:"children"`
		After    string  `json:"after"`
	} `json:"data"`
}

// commentData covers both "t1" comments and "more" placeholders.
type commentData struct {
	ID         string   `json:"id"`
	ParentID   string   `json:"parent_id"`
	Body       string   `json:"body"`
	Score      int      `json:"score"`
	CreatedUTC float64  `json:"created_utc"`
	Children   []string `json:"children"`
}

type moreChildrenResponse struct {
	JSON struct {
		Errors [][]any `json:"errors"`
		Data   struct {
			Things []thing `json:"things"`
		} `json:"data"`
	} `json:"json"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Client is an application-only OAuth client for Reddit's read API.
type Client struct {
	api     *resty.Client
	auth    *resty.Client
	authURL string
	logger  *utils.Logger

	token       string
	tokenExpiry time.Time
}

// NewClient validates creds and builds a client. No request is made until
// the first API call.
func NewClient(creds Credentials, opts Options, logger *utils.Logger) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if opts.AuthURL == "" {
		opts.AuthURL = defaultAuthURL
	}
	if opts.APIURL == "" {
		opts.APIURL = defaultAPIURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	api := resty.New().
		SetBaseURL(opts.APIURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", creds.UserAgent).
		SetHeader("Accept", "application/json")

	// Token requests use basic auth; they get their own client so the
	// bearer token of API calls never replaces it.
	auth := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", creds.UserAgent).
		SetHeader("Accept", "application/json").
		SetBasicAuth(creds.ClientID, creds.ClientSecret)

	return &Client{api: api, auth: auth, authURL: opts.AuthURL, logger: logger}, nil
}

func (c *Client) authorize(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	var tok tokenResponse
	res, err := c.auth.R().
		SetContext(ctx).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&tok).
		Post(c.authURL)
	if err != nil {
		return fmt.Errorf("reddit: request token: %w", err)
	}
	if res.IsError() || tok.AccessToken == "" {
		return fmt.Errorf("reddit: request token: %s", res.Status())
	}

	lifetime := time.Duration(tok.ExpiresIn) * time.Second
	if lifetime <= time.Minute {
		lifetime = time.Hour
	}
	c.token = tok.AccessToken
	// Refresh a minute early so a request never races the expiry.
	c.tokenExpiry = time.Now().Add(lifetime - time.Minute)
	c.logger.Debug("[reddit] Obtained application token (expires in %ds)", tok.ExpiresIn)
	return nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	if err := c.authorize(ctx); err != nil {
		return err
	}

	res, err := c.api.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetQueryParams(params).
		SetQueryParam("raw_json", "1").
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("reddit: GET %s: %w", path, err)
	}
	if res.IsError() {
		return fmt.Errorf("reddit: GET %s: %s", path, res.Status())
	}
	return nil
}

// Hot returns up to limit "hot" posts of a community.
func (c *Client) Hot(ctx context.Context, community string, limit int) ([]Submission, error) {
	return c.submissions(ctx, "/r/"+url.PathEscape(community)+"/hot", map[string]string{
		"limit": fmt.Sprint(limit),
	})
}

// Top returns up to limit top posts of a community over period
// ("day", "week", "month", ...).
func (c *Client) Top(ctx context.Context, community, period string, limit int) ([]Submission, error) {
	return c.submissions(ctx, "/r/"+url.PathEscape(community)+"/top", map[string]string{
		"t":     period,
		"limit": fmt.Sprint(limit),
	})
}

func (c *Client) submissions(ctx context.Context, path string, params map[string]string) ([]Submission, error) {
	var l listing
	if err := c.get(ctx, path, params, &l); err != nil {
		return nil, err
	}

	subs := make([]Submission, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var s Submission
		if err := json.Unmarshal(child.Data, &s); err != nil {
			return nil, fmt.Errorf("reddit: decode post: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// TopLevelComments returns a post's direct replies in thread order. Up to
// expandLimit top-level "more comments" placeholders are replaced by the
// replies they stand for; the rest are dropped.
func (c *Client) TopLevelComments(ctx context.Context, postID string, expandLimit int) ([]RawComment, error) {
	var listings []listing
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), nil, &listings); err != nil {
		return nil, err
	}
	if len(listings) < 2 {
		return nil, fmt.Errorf("reddit: comments for %s: unexpected response shape", postID)
	}

	linkID := "t3_" + postID
	items := listings[1].Data.Children
	var out []RawComment
	expansions := 0

	for i := 0; i < len(items); i++ {
		var d commentData
		if err := json.Unmarshal(items[i].Data, &d); err != nil {
			return nil, fmt.Errorf("reddit: decode comment: %w", err)
		}

		switch items[i].Kind {
		case "t1":
			out = append(out, RawComment{ID: d.ID, Body: d.Body, Score: d.Score, CreatedUTC: d.CreatedUTC})
		case "more":
			if expansions >= expandLimit || len(d.Children) == 0 {
				continue
			}
			expansions++

			replies, err := c.moreChildren(ctx, linkID, d.Children)
			if err != nil {
				c.logger.Warn("[reddit] Expanding comments of %s: %v", postID, err)
				continue
			}
			items = append(items[:i+1], append(replies, items[i+1:]...)...)
		}
	}
	return out, nil
}

// moreChildren resolves a placeholder and keeps only the direct replies to
// linkID, in the order returned.
func (c *Client) moreChildren(ctx context.Context, linkID string, children []string) ([]thing, error) {
	if len(children) > maxMoreChildren {
		children = children[:maxMoreChildren]
	}

	var resp moreChildrenResponse
	err := c.get(ctx, "/api/morechildren", map[string]string{
		"api_type": "json",
		"link_id":  linkID,
		"children": strings.Join(children, ","),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.JSON.Errors) > 0 {
		return nil, fmt.Errorf("reddit: morechildren: %v", resp.JSON.Errors)
	}

	var direct []thing
	for _, th := range resp.JSON.Data.Things {
		var d commentData
		if err := json.Unmarshal(th.Data, &d); err != nil {
			return nil, fmt.Errorf("reddit: decode comment: %w", err)
		}
		if d.ParentID == linkID {
			direct = append(direct, th)
		}
	}
	return direct, nil
}
