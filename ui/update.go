package ui

import (
	bubbleKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"onuze-cli/actions"
	"onuze-cli/api"
	"onuze-cli/comments"
	"onuze-cli/feed"
	"onuze-cli/shared"
	"onuze-cli/stream"
)

type postsUpdatedMsg struct{}
type filterChangedMsg struct {
	filter feed.Filter
}
type commentsUpdatedMsg struct{}
type postLoadedMsg struct {
	post *shared.Post
}
type actionDoneMsg struct {
	err *shared.ApiError
}

func (m browseUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.windowResized(msg.Width, msg.Height)

	case postsUpdatedMsg:
		m.reloadPosts()

	case filterChangedMsg:
		return m, m.setFilter(msg.filter)

	case commentsUpdatedMsg:
		m.refreshVisible()
		m.updatePostView()

	case postLoadedMsg:
		if m.post != nil && msg.post.Path == m.post.Path {
			m.post = msg.post
			m.updatePostView()
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Msg
		} else {
			m.errMsg = ""
		}
		if m.mode == modePost {
			m.refreshVisible()
			m.updatePostView()
		}

	case tea.KeyMsg:
		if m.replying {
			return m.updateReplying(msg)
		}

		switch {
		case bubbleKey.Matches(msg, m.keymap.quit):
			return m, tea.Quit

		case bubbleKey.Matches(msg, m.keymap.up):
			m.up()

		case bubbleKey.Matches(msg, m.keymap.down):
			return m, m.down()

		case bubbleKey.Matches(msg, m.keymap.open):
			if m.mode == modeFeed {
				return m, m.openPost()
			}

		case bubbleKey.Matches(msg, m.keymap.back):
			if m.mode == modePost {
				m.closePost()
			} else {
				return m, tea.Quit
			}

		case bubbleKey.Matches(msg, m.keymap.upvote):
			return m, m.vote(shared.VoteUp)

		case bubbleKey.Matches(msg, m.keymap.downvote):
			return m, m.vote(shared.VoteDown)

		case bubbleKey.Matches(msg, m.keymap.reply):
			m.startReply()

		case bubbleKey.Matches(msg, m.keymap.filter):
			if m.mode == modeFeed {
				// write the shared signal; the refetch arrives back through
				// the feed subscription
				feed.Set(m.filter.Next())
			}

		case bubbleKey.Matches(msg, m.keymap.collapse):
			m.toggleCollapse()

		case bubbleKey.Matches(msg, m.keymap.browser):
			if post := m.currentPost(); post != nil {
				OpenPostInBrowser(*post)
			}
		}
	}

	return m, nil
}

func (m *browseUIModel) updateReplying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case bubbleKey.Matches(msg, m.keymap.cancel):
		m.replying = false
		m.replyInput.Reset()
		return *m, nil

	case bubbleKey.Matches(msg, m.keymap.submit):
		content := m.replyInput.Value()
		if content == "" {
			return *m, nil
		}
		m.replying = false
		m.replyInput.Reset()
		return *m, m.submitReply(content)
	}

	var cmd tea.Cmd
	m.replyInput, cmd = m.replyInput.Update(msg)
	return *m, cmd
}

func (m *browseUIModel) windowResized(w, h int) {
	m.width = w
	m.height = h

	if !m.ready {
		m.initViewport()
		m.ready = true
	} else {
		m.resizeViewport()
	}

	m.updatePostView()
}

// setFilter repoints the model at the new filter's post stream, moves the
// posts subscription over to it, and kicks off its fetch if needed.
func (m *browseUIModel) setFilter(f feed.Filter) tea.Cmd {
	m.filter = f
	m.feedKey = stream.PostsKey(f.BackendSort(), "", "")
	m.selectedPostIndex = 0

	s, created := stream.Posts.Open(m.feedKey)
	if unsubPosts != nil {
		unsubPosts()
	}
	unsubPosts = s.Subscribe(func() {
		send(postsUpdatedMsg{})
	})
	m.reloadPosts()

	return func() tea.Msg {
		if created {
			s.FetchNextPage()
		}
		return postsUpdatedMsg{}
	}
}

func (m *browseUIModel) reloadPosts() {
	s := streamForKey(m.feedKey)
	if s == nil {
		return
	}
	m.posts = s.Items()
	m.hasMore = s.HasMore()
	if apiErr := s.Err(); apiErr != nil {
		m.errMsg = apiErr.Msg
	}
	if m.selectedPostIndex >= len(m.posts) && len(m.posts) > 0 {
		m.selectedPostIndex = len(m.posts) - 1
	}
}

func (m *browseUIModel) up() {
	if m.mode == modeFeed {
		if m.selectedPostIndex > 0 {
			m.selectedPostIndex--
		}
		return
	}

	if m.selectedRow > -1 {
		m.selectedRow--
		m.updatePostView()
	}
}

// down moves the selection and triggers the next page fetch when the
// selection nears the end of the loaded window.
func (m *browseUIModel) down() tea.Cmd {
	if m.mode == modeFeed {
		if m.selectedPostIndex < len(m.posts)-1 {
			m.selectedPostIndex++
		}

		if m.hasMore && m.selectedPostIndex >= len(m.posts)-3 {
			key := m.feedKey
			return func() tea.Msg {
				if s := streamForKey(key); s != nil {
					s.FetchNextPage()
				}
				return nil
			}
		}
		return nil
	}

	if m.selectedRow < len(m.visible)-1 {
		m.selectedRow++
		m.updatePostView()
	} else if m.tree != nil {
		key := commentsKeyFor(m.tree)
		return func() tea.Msg {
			if s := commentStreamForKey(key); s != nil {
				s.FetchNextPage()
			}
			return nil
		}
	}
	return nil
}

func (m *browseUIModel) openPost() tea.Cmd {
	sel := m.selectedPost()
	if sel == nil {
		return nil
	}

	post := *sel
	m.post = &post
	m.mode = modePost
	m.selectedRow = -1
	m.errMsg = ""
	m.tree = comments.ForPost(post.Path, comments.SortNew)
	m.refreshVisible()
	m.updatePostView()

	watchComments(post.Path)

	path := post.Path
	return func() tea.Msg {
		full, apiErr := api.Client.GetPost(path)
		if apiErr != nil {
			return actionDoneMsg{err: apiErr}
		}
		return postLoadedMsg{post: full}
	}
}

func (m *browseUIModel) closePost() {
	unwatchComments()
	m.mode = modeFeed
	m.post = nil
	m.tree = nil
	m.visible = nil
	m.errMsg = ""
	m.reloadPosts()
}

// currentPost is the post the next post-level action applies to.
func (m *browseUIModel) currentPost() *shared.Post {
	if m.mode == modePost {
		return m.post
	}
	return m.selectedPost()
}

func (m *browseUIModel) vote(dir shared.VoteDirection) tea.Cmd {
	if m.mode == modePost && m.selectedRow >= 0 {
		node := m.selectedComment()
		if node == nil {
			return nil
		}
		tree := m.tree
		id := node.Id
		return func() tea.Msg {
			return actionDoneMsg{err: actions.VoteComment(tree, id, dir)}
		}
	}

	sel := m.currentPost()
	if sel == nil {
		return nil
	}

	post := *sel
	return func() tea.Msg {
		return actionDoneMsg{err: actions.VotePost(&post, dir)}
	}
}

func (m *browseUIModel) startReply() {
	if m.mode != modePost || m.post == nil {
		return
	}
	if !actions.ReplyAllowed(*m.post) {
		m.errMsg = "This post is locked"
		return
	}

	m.replyParent = nil
	if m.selectedRow >= 0 {
		if node := m.selectedComment(); node != nil {
			id := node.Id
			m.replyParent = &id
		}
	}

	m.replying = true
	m.replyInput.Reset()
	m.replyInput.Focus()
}

func (m *browseUIModel) submitReply(content string) tea.Cmd {
	tree := m.tree
	post := m.post
	parent := m.replyParent
	if tree == nil || post == nil {
		return nil
	}

	return func() tea.Msg {
		return actionDoneMsg{err: actions.SubmitReply(tree, post, parent, content)}
	}
}

func (m *browseUIModel) toggleCollapse() {
	if m.mode != modePost {
		return
	}
	node := m.selectedComment()
	if node == nil {
		return
	}

	m.tree.SetCollapsed(node.Id, !node.Collapsed)
	m.refreshVisible()
	m.updatePostView()
}
