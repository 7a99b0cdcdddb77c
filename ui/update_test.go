package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onuze-cli/feed"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

func cleanupSubscriptions(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		if unsubPosts != nil {
			unsubPosts()
			unsubPosts = nil
		}
	})
}

// A feed signal change repoints the model at the new filter's stream and
// resets the selection.
func TestFilterChangeRepointsFeed(t *testing.T) {
	cleanupSubscriptions(t)

	m := initialModel(feed.FilterHome)
	m.posts = []shared.Post{{Path: "p1"}, {Path: "p2"}}
	m.selectedPostIndex = 1

	next, cmd := m.Update(filterChangedMsg{filter: feed.FilterNew})
	require.NotNil(t, cmd, "a fetch must be kicked off for the new feed")

	updated := next.(browseUIModel)
	assert.Equal(t, feed.FilterNew, updated.filter)
	assert.Equal(t, stream.PostsKey("new", "", ""), updated.feedKey)
	assert.Equal(t, 0, updated.selectedPostIndex)
}

// The cycle key writes the shared signal; the refetch comes back through
// the feed subscription, not directly.
func TestFilterKeyWritesSignal(t *testing.T) {
	prev := feed.Get()
	t.Cleanup(func() { feed.Set(prev) })

	m := initialModel(prev)
	m.mode = modeFeed

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})

	assert.Equal(t, prev.Next(), feed.Get())
}
