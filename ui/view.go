package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"onuze-cli/comments"
	"onuze-cli/format"
	"onuze-cli/shared"
	"onuze-cli/term"
)

var borderColor = lipgloss.Color("#444")
var helpTextColor = lipgloss.Color("#ddd")
var dimColor = lipgloss.Color("#888")

var selectedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#fff")).
	Background(lipgloss.Color("#37474f"))

var metaStyle = lipgloss.NewStyle().Foreground(dimColor)

var upvotedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#66bb6a"))
var downvotedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef5350"))

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef5350")).Bold(true)

var helpStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(borderColor).
	Foreground(helpTextColor)

func (m browseUIModel) View() string {
	if !m.ready {
		return ""
	}

	if m.mode == modePost {
		return m.renderPostMode()
	}

	return m.renderFeedMode()
}

func (m browseUIModel) renderFeedMode() string {
	header := m.renderFeedHeader()
	help := m.renderHelp("enter open · u/d vote · f feed · o browser · q quit")

	listHeight := m.height - lipgloss.Height(header) - lipgloss.Height(help)
	if m.errMsg != "" {
		listHeight--
	}

	rows := m.renderFeedRows(listHeight)

	parts := []string{header, rows}
	if m.errMsg != "" {
		parts = append(parts, errStyle.Render("🚨 "+m.errMsg))
	}
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m browseUIModel) renderFeedHeader() string {
	label := string(m.filter)
	count := fmt.Sprintf("%d loaded", len(m.posts))
	if m.hasMore {
		count += " · more below"
	}

	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("onuze · %s feed · %s", label, count))
}

// renderFeedRows renders a window of the post list around the selection.
func (m browseUIModel) renderFeedRows(height int) string {
	if height < 1 {
		height = 1
	}

	start := 0
	if m.selectedPostIndex >= height {
		start = m.selectedPostIndex - height + 1
	}
	end := start + height
	if end > len(m.posts) {
		end = len(m.posts)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		line := m.renderFeedRow(m.posts[i], i == m.selectedPostIndex)
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m browseUIModel) renderFeedRow(post shared.Post, selected bool) string {
	score := renderScore(post.Score, post.UserVote)

	flags := ""
	if post.IsPinned {
		flags += " 📌"
	}
	if post.IsLocked {
		flags += " 🔒"
	}

	meta := metaStyle.Render(fmt.Sprintf(
		"%s · %s · %s · %d comments",
		post.Community.Name,
		post.User.Username,
		format.Time(post.CreatedAt),
		post.CommentCount,
	))

	title := post.Title
	if selected {
		title = selectedStyle.Render(title)
	}

	line := fmt.Sprintf(" %s %s%s  %s", score, title, flags, meta)
	return truncateLine(line, m.width)
}

func (m browseUIModel) renderPostMode() string {
	help := m.renderHelp("u/d vote · r reply · c collapse · o browser · esc back")

	parts := []string{m.postViewport.View()}

	if m.replying {
		target := "post"
		if m.replyParent != nil {
			target = "comment"
		}
		replyHeader := metaStyle.Render(fmt.Sprintf("Replying to %s · ctrl+s submit · esc cancel", target))
		parts = append(parts, replyHeader, m.replyInput.View())
	}

	if m.errMsg != "" {
		parts = append(parts, errStyle.Render("🚨 "+m.errMsg))
	}
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m browseUIModel) renderHelp(text string) string {
	return helpStyle.Width(m.width).Render(" " + text)
}

func (m *browseUIModel) initViewport() {
	m.postViewport = viewport.New(m.width, m.postViewportHeight())
}

func (m *browseUIModel) resizeViewport() {
	m.postViewport.Width = m.width
	m.postViewport.Height = m.postViewportHeight()
}

func (m *browseUIModel) postViewportHeight() int {
	h := m.height - 2
	if m.replying {
		h -= m.replyInput.Height() + 1
	}
	if m.errMsg != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// updatePostView re-renders the thread into the viewport and keeps the
// selection visible.
func (m *browseUIModel) updatePostView() {
	if !m.ready || m.mode != modePost || m.post == nil {
		return
	}

	m.resizeViewport()

	content, selectedLine := m.renderThread()
	m.postViewport.SetContent(content)

	if selectedLine >= 0 {
		top := m.postViewport.YOffset
		bottom := top + m.postViewport.Height - 1
		if selectedLine < top {
			m.postViewport.SetYOffset(selectedLine)
		} else if selectedLine > bottom {
			m.postViewport.SetYOffset(selectedLine - m.postViewport.Height + 1)
		}
	} else {
		m.postViewport.GotoTop()
	}
}

// renderThread builds the full post view content and returns the line the
// selected comment starts on (-1 when the post itself is selected).
func (m *browseUIModel) renderThread() (string, int) {
	var b strings.Builder

	header := m.renderPostHeader()
	b.WriteString(header)
	b.WriteString("\n")

	headerLines := strings.Count(header, "\n") + 2
	selectedLine := -1

	b.WriteString(metaStyle.Render(fmt.Sprintf("── %d comments ──", m.post.CommentCount)))
	b.WriteString("\n")

	line := headerLines
	for i, row := range m.visible {
		node := m.tree.Get(row.id)
		if node == nil {
			continue
		}

		rendered := m.renderComment(node, row.depth, i == m.selectedRow)
		if i == m.selectedRow {
			selectedLine = line
		}

		b.WriteString(rendered)
		b.WriteString("\n")
		line += strings.Count(rendered, "\n") + 1
	}

	return b.String(), selectedLine
}

func (m *browseUIModel) renderPostHeader() string {
	post := m.post

	title := lipgloss.NewStyle().Bold(true).Render(post.Title)
	if m.selectedRow == -1 {
		title = selectedStyle.Render(post.Title)
	}

	flags := ""
	if post.IsPinned {
		flags += " 📌"
	}
	if post.IsLocked {
		flags += " 🔒 " + post.LockedReason
	}

	meta := metaStyle.Render(fmt.Sprintf(
		"%s · %s · %s · %s",
		renderScore(post.Score, post.UserVote),
		post.Community.Name,
		post.User.Username,
		format.Time(post.CreatedAt),
	))

	body := ""
	if post.Content != "" {
		md, err := term.GetMarkdown(post.Content)
		if err != nil {
			md = post.Content
		}
		body = strings.TrimRight(md, "\n")
	}

	parts := []string{title + flags, meta}
	if body != "" {
		parts = append(parts, body)
	}
	for _, media := range post.MediaDisplay {
		parts = append(parts, metaStyle.Render(fmt.Sprintf("[%s] %s", media.MediaType, media.MediaUrl)))
	}

	return strings.Join(parts, "\n")
}

func (m *browseUIModel) renderComment(node *comments.Node, depth int, selected bool) string {
	indent := strings.Repeat("  ", depth+1)

	content := node.Content
	if node.IsDeleted {
		content = metaStyle.Render("[deleted]")
	}

	author := node.User.Username
	if selected {
		author = selectedStyle.Render(author)
	} else {
		author = lipgloss.NewStyle().Bold(true).Render(author)
	}

	meta := fmt.Sprintf("%s %s · %s", author, renderScore(node.Score, node.UserVote), format.Time(node.CreatedAt))

	if node.Collapsed {
		hidden := m.tree.DescendantCount(node.Id)
		return fmt.Sprintf("%s%s %s", indent, meta, metaStyle.Render(fmt.Sprintf("[+%d hidden]", hidden)))
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(meta)
	for _, contentLine := range strings.Split(content, "\n") {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(truncateLine(contentLine, m.width-len(indent)))
	}

	if node.ReplyError != "" {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(errStyle.Render("🚨 " + node.ReplyError))
	}

	return b.String()
}

func renderScore(score int, vote shared.VoteDirection) string {
	s := fmt.Sprintf("▲%d", score)
	switch vote {
	case shared.VoteUp:
		return upvotedStyle.Render(s)
	case shared.VoteDown:
		return downvotedStyle.Render(s)
	}
	return s
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
