package models

// DiscussionPost is one relevant thread from the discussion platform,
// flattened together with its kept top-level comments.
type DiscussionPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Selftext    string    `json:"selftext"`
	Score       int       `json:"score"`
	UpvoteRatio float64   `json:"upvote_ratio"`
	NumComments int       `json:"num_comments"`
	Created     string    `json:"created"`
	URL         string    `json:"url"`
	Subreddit   string    `json:"subreddit"`
	Author      string    `json:"author"`
	Flair       *string   `json:"flair"`
	Comments    []Comment `json:"comments"`
}

type Comment struct {
	Body    string `json:"body"`
	Score   int    `json:"score"`
	Created string `json:"created"`
}
