package reddit

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"vacuum-research/models"
	"vacuum-research/utils"
)

const (
	maxComments = 10
	// Comment bodies must be strictly longer than this, in characters.
	minCommentLength = 20
	// moreExpandLimit bounds "more comments" expansions per post.
	moreExpandLimit = 5
	topPeriod       = "month"

	createdLayout = "2006-01-02T15:04:05"
)

// Platform is the read API the miner needs.
type Platform interface {
	Hot(ctx context.Context, community string, limit int) ([]Submission, error)
	Top(ctx context.Context, community, period string, limit int) ([]Submission, error)
	TopLevelComments(ctx context.Context, postID string, expandLimit int) ([]RawComment, error)
}

// Miner collects keyword-relevant posts from a fixed community list.
type Miner struct {
	platform    Platform
	communities []string
	keywords    []string
	logger      *utils.Logger
}

// NewMiner creates a Miner. Keywords are matched lower-cased.
func NewMiner(platform Platform, communities, keywords []string, logger *utils.Logger) *Miner {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Miner{platform: platform, communities: communities, keywords: lowered, logger: logger}
}

// Mine runs one sequential pass: per community, hot and top-of-month posts
// (limit split evenly across communities), keyword filtered; then the union
// is deduplicated by id in first-seen order and each post gets its comments.
// A failing community is logged and skipped.
func (m *Miner) Mine(ctx context.Context, limit int) ([]*models.DiscussionPost, error) {
	if len(m.communities) == 0 {
		return []*models.DiscussionPost{}, nil
	}
	perCommunity := limit / len(m.communities)

	var candidates []Submission
	for _, name := range m.communities {
		m.logger.Info("[reddit] Scraping r/%s", name)
		subs, err := m.fetchCommunity(ctx, name, perCommunity)
		if err != nil {
			m.logger.Error("[reddit] Error scraping r/%s: %v", name, err)
			continue
		}
		candidates = append(candidates, subs...)
	}

	seen := utils.NewOrderedSet()
	posts := make([]*models.DiscussionPost, 0, len(candidates))
	for _, sub := range candidates {
		if !seen.Add(sub.ID) {
			continue
		}
		posts = append(posts, m.expand(ctx, sub))
	}

	m.logger.Info("[reddit] Found %d vacuum-related posts (%d before dedup)", len(posts), len(candidates))
	return posts, nil
}

// fetchCommunity returns the relevant hot and top posts of one community,
// or an error if either listing failed.
func (m *Miner) fetchCommunity(ctx context.Context, name string, limit int) ([]Submission, error) {
	if limit <= 0 {
		return nil, nil
	}

	hot, err := m.platform.Hot(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("hot: %w", err)
	}
	top, err := m.platform.Top(ctx, name, topPeriod, limit)
	if err != nil {
		return nil, fmt.Errorf("top: %w", err)
	}

	var kept []Submission
	for _, sub := range append(hot, top...) {
		if Relevant(sub.Title, m.keywords) {
			kept = append(kept, sub)
		}
	}
	m.logger.Debug("[reddit] r/%s: kept %d of %d posts", name, len(kept), len(hot)+len(top))
	return kept, nil
}

func (m *Miner) expand(ctx context.Context, sub Submission) *models.DiscussionPost {
	raw, err := m.platform.TopLevelComments(ctx, sub.ID, moreExpandLimit)
	if err != nil {
		m.logger.Warn("[reddit] Comments for %s unavailable: %v", sub.ID, err)
	}
	return toPost(sub, KeepComments(raw))
}

// Relevant reports whether the lower-cased title contains any keyword as a
// plain substring. There is no word-boundary check: "shark" matches
// "sharkbite" too.
func Relevant(title string, keywords []string) bool {
	title = strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(title, k) {
			return true
		}
	}
	return false
}

// KeepComments returns the first maxComments comments whose body is longer
// than minCommentLength characters. Shorter comments do not use up a slot.
func KeepComments(raw []RawComment) []models.Comment {
	kept := []models.Comment{}
	for _, c := range raw {
		if len(kept) == maxComments {
			break
		}
		if utf8.RuneCountInString(c.Body) <= minCommentLength {
			continue
		}
		kept = append(kept, models.Comment{
			Body:    c.Body,
			Score:   c.Score,
			Created: formatCreated(c.CreatedUTC),
		})
	}
	return kept
}

func toPost(sub Submission, comments []models.Comment) *models.DiscussionPost {
	author := sub.Author
	if author == "" {
		author = "[deleted]"
	}
	return &models.DiscussionPost{
		ID:          sub.ID,
		Title:       sub.Title,
		Selftext:    sub.Selftext,
		Score:       sub.Score,
		UpvoteRatio: sub.UpvoteRatio,
		NumComments: sub.NumComments,
		Created:     formatCreated(sub.CreatedUTC),
		URL:         sub.URL,
		Subreddit:   sub.Subreddit,
		Author:      author,
		Flair:       sub.LinkFlairText,
		Comments:    comments,
	}
}

func formatCreated(epoch float64) string {
	return time.Unix(int64(epoch), 0).UTC().Format(createdLayout)
}
