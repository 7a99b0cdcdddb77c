package ui

import (
	bubbleKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"onuze-cli/comments"
	"onuze-cli/feed"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

type uiMode int

const (
	modeFeed uiMode = iota
	modePost
)

type browseUIModel struct {
	mode uiMode

	filter  feed.Filter
	feedKey stream.Key
	posts   []shared.Post
	hasMore bool

	selectedPostIndex int

	// post view
	post           *shared.Post
	tree           *comments.Tree
	visible        []commentRow
	selectedRow    int
	postViewport   viewport.Model
	renderedHeader string

	replying    bool
	replyParent *string
	replyInput  textarea.Model

	keymap keymap
	errMsg string
	ready  bool
	width  int
	height int
}

// commentRow is one visible line of the thread: a comment id at a depth,
// after collapsed subtrees are folded away.
type commentRow struct {
	id    string
	depth int
}

type keymap = struct {
	up,
	down,
	open,
	back,
	upvote,
	downvote,
	reply,
	filter,
	collapse,
	browser,
	submit,
	cancel,
	quit bubbleKey.Binding
}

func (m browseUIModel) Init() tea.Cmd {
	return nil
}

func initialModel(filter feed.Filter) *browseUIModel {
	sort := filter.BackendSort()
	key := stream.PostsKey(sort, "", "")

	input := textarea.New()
	input.Placeholder = "Write a reply..."
	input.ShowLineNumbers = false
	input.SetHeight(4)

	return &browseUIModel{
		mode:       modeFeed,
		filter:     filter,
		feedKey:    key,
		replyInput: input,
		keymap: keymap{
			up: bubbleKey.NewBinding(
				bubbleKey.WithKeys("up", "k"),
				bubbleKey.WithHelp("↑/k", "up"),
			),
			down: bubbleKey.NewBinding(
				bubbleKey.WithKeys("down", "j"),
				bubbleKey.WithHelp("↓/j", "down"),
			),
			open: bubbleKey.NewBinding(
				bubbleKey.WithKeys("enter"),
				bubbleKey.WithHelp("enter", "open post"),
			),
			back: bubbleKey.NewBinding(
				bubbleKey.WithKeys("esc"),
				bubbleKey.WithHelp("esc", "back"),
			),
			upvote: bubbleKey.NewBinding(
				bubbleKey.WithKeys("u"),
				bubbleKey.WithHelp("u", "upvote"),
			),
			downvote: bubbleKey.NewBinding(
				bubbleKey.WithKeys("d"),
				bubbleKey.WithHelp("d", "downvote"),
			),
			reply: bubbleKey.NewBinding(
				bubbleKey.WithKeys("r"),
				bubbleKey.WithHelp("r", "reply"),
			),
			filter: bubbleKey.NewBinding(
				bubbleKey.WithKeys("f"),
				bubbleKey.WithHelp("f", "cycle feed"),
			),
			collapse: bubbleKey.NewBinding(
				bubbleKey.WithKeys("c"),
				bubbleKey.WithHelp("c", "collapse thread"),
			),
			browser: bubbleKey.NewBinding(
				bubbleKey.WithKeys("o"),
				bubbleKey.WithHelp("o", "open in browser"),
			),
			submit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("ctrl+s"),
				bubbleKey.WithHelp("ctrl+s", "submit reply"),
			),
			cancel: bubbleKey.NewBinding(
				bubbleKey.WithKeys("esc"),
				bubbleKey.WithHelp("esc", "cancel"),
			),
			quit: bubbleKey.NewBinding(
				bubbleKey.WithKeys("q", "ctrl+c"),
				bubbleKey.WithHelp("q", "quit"),
			),
		},
	}
}

func (m *browseUIModel) selectedPost() *shared.Post {
	if m.selectedPostIndex < 0 || m.selectedPostIndex >= len(m.posts) {
		return nil
	}
	return &m.posts[m.selectedPostIndex]
}

func (m *browseUIModel) selectedComment() *comments.Node {
	if m.tree == nil || m.selectedRow < 0 || m.selectedRow >= len(m.visible) {
		return nil
	}
	return m.tree.Get(m.visible[m.selectedRow].id)
}

// refreshVisible recomputes the visible thread rows, folding collapsed
// subtrees.
func (m *browseUIModel) refreshVisible() {
	m.visible = nil
	if m.tree == nil {
		return
	}

	collapsedDepth := -1
	m.tree.Walk(func(n *comments.Node, depth int) {
		if collapsedDepth >= 0 {
			if depth > collapsedDepth {
				return
			}
			collapsedDepth = -1
		}

		m.visible = append(m.visible, commentRow{id: n.Id, depth: depth})

		if n.Collapsed {
			collapsedDepth = depth
		}
	})

	if m.selectedRow >= len(m.visible) {
		m.selectedRow = len(m.visible) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}
