package reddit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacuum-research/utils"
)

type fakePlatform struct {
	hot      map[string][]Submission
	top      map[string][]Submission
	failHot  map[string]bool
	failTop  map[string]bool
	comments map[string][]RawComment

	limits      []int
	periods     []string
	commentReqs []string
}

func (f *fakePlatform) Hot(_ context.Context, community string, limit int) ([]Submission, error) {
	f.limits = append(f.limits, limit)
	if f.failHot[community] {
		return nil, errors.New("403 Forbidden")
	}
	return f.hot[community], nil
}

func (f *fakePlatform) Top(_ context.Context, community, period string, limit int) ([]Submission, error) {
	f.periods = append(f.periods, period)
	if f.failTop[community] {
		return nil, errors.New("timeout")
	}
	return f.top[community], nil
}

func (f *fakePlatform) TopLevelComments(_ context.Context, postID string, expandLimit int) ([]RawComment, error) {
	f.commentReqs = append(f.commentReqs, postID)
	if expandLimit != moreExpandLimit {
		return nil, errors.New("unexpected expand limit")
	}
	if c, ok := f.comments[postID]; ok {
		return c, nil
	}
	return nil, errors.New("not found")
}

var testKeywords = []string{"roomba", "Robot Vacuum", "eufy"}

func TestRelevant(t *testing.T) {
	assert.True(t, Relevant("My ROOMBA died", testKeywords))
	assert.True(t, Relevant("Best robot vacuum for pet hair?", []string{"robot vacuum"}))
	assert.False(t, Relevant("Cast iron pans", testKeywords))
	assert.True(t, Relevant("sharkbite fittings", []string{"shark"}), "no word boundary check")
}

func TestKeepCommentsLengthBoundaryAndCap(t *testing.T) {
	raw := []RawComment{
		{Body: strings.Repeat("x", 20)},
		{Body: strings.Repeat("y", 21), Score: 3, CreatedUTC: 1700000000},
	}
	for i := 0; i < 15; i++ {
		raw = append(raw, RawComment{Body: "short"}, RawComment{Body: strings.Repeat("z", 30)})
	}

	kept := KeepComments(raw)

	require.Len(t, kept, 10)
	assert.Equal(t, strings.Repeat("y", 21), kept[0].Body)
	assert.Equal(t, 3, kept[0].Score)
	assert.Equal(t, "2023-11-14T22:13:20", kept[0].Created)
	for _, c := range kept {
		assert.Greater(t, len([]rune(c.Body)), 20)
	}
}

func TestKeepCommentsCountsCharactersNotBytes(t *testing.T) {
	kept := KeepComments([]RawComment{{Body: strings.Repeat("é", 20)}, {Body: strings.Repeat("é", 21)}})
	require.Len(t, kept, 1)
	assert.Equal(t, strings.Repeat("é", 21), kept[0].Body)
}

func TestMineFiltersDedupsAndIsolatesFailures(t *testing.T) {
	platform := &fakePlatform{
		hot: map[string][]Submission{
			"RobotVacuums": {
				{ID: "a", Title: "Roomba j7 vs Eufy"},
				{ID: "b", Title: "Weekly thread"},
				{ID: "c", Title: "Eufy app broken", Author: "someone"},
			},
			"Frugal": {{ID: "f", Title: "Cheap robot vacuum that works"}},
		},
		top: map[string][]Submission{
			"RobotVacuums": {{ID: "a", Title: "Roomba j7 vs Eufy"}, {ID: "d", Title: "My roomba"}},
			"Frugal":       {{ID: "c", Title: "eufy deal again"}},
		},
		failHot: map[string]bool{"homeautomation": true},
		failTop: map[string]bool{"BuyItForLife": true},
		comments: map[string][]RawComment{
			"a": {{Body: "this comment is clearly long enough"}},
		},
	}
	platform.hot["BuyItForLife"] = []Submission{{ID: "z", Title: "roomba lasted 12 years"}}

	m := NewMiner(platform, []string{"RobotVacuums", "homeautomation", "BuyItForLife", "Frugal"}, testKeywords, utils.NewNopLogger())
	posts, err := m.Mine(context.Background(), 200)
	require.NoError(t, err)

	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "d", "f"}, ids)
	assert.Equal(t, []string{"a", "c", "d", "f"}, platform.commentReqs)

	for _, l := range platform.limits {
		assert.Equal(t, 50, l)
	}
	for _, p := range platform.periods {
		assert.Equal(t, "month", p)
	}

	assert.Len(t, posts[0].Comments, 1)
	assert.NotNil(t, posts[1].Comments, "failed comment fetch keeps the post with no comments")
	assert.Empty(t, posts[1].Comments)
	assert.Equal(t, "someone", posts[1].Author)
	assert.Equal(t, "[deleted]", posts[0].Author)
}

func TestMineLimitBelowCommunityCount(t *testing.T) {
	platform := &fakePlatform{}
	m := NewMiner(platform, []string{"a", "b", "c"}, testKeywords, utils.NewNopLogger())

	posts, err := m.Mine(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, platform.limits)
}
