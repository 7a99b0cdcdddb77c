package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"onuze-cli/comments"
	"onuze-cli/feed"
	"onuze-cli/shared"
	"onuze-cli/stream"
	"onuze-cli/term"
)

var program *tea.Program

var unsubPosts func()
var unsubComments func()
var commentsKey stream.Key

// StartBrowseUI opens the interactive feed browser for the given filter.
func StartBrowseUI(filter feed.Filter) error {
	m := initialModel(filter)

	term.StartSpinner("")
	s := stream.Posts.Query(m.feedKey)
	term.StopSpinner()

	if apiErr := s.Err(); apiErr != nil {
		return fmt.Errorf("error loading feed: %v", apiErr.Msg)
	}

	m.posts = s.Items()
	m.hasMore = s.HasMore()

	if len(m.posts) == 0 {
		fmt.Println("🤷‍♂️ No posts here yet")
		return nil
	}

	program = tea.NewProgram(m, tea.WithAltScreen())

	unsubPosts = s.Subscribe(func() {
		send(postsUpdatedMsg{})
	})
	unsubFilter := feed.Subscribe(func(f feed.Filter) {
		send(filterChangedMsg{filter: f})
	})
	defer func() {
		unsubPosts()
		unsubFilter()
		unwatchComments()
	}()

	_, err := program.Run()
	program = nil

	if err != nil {
		return fmt.Errorf("error running feed UI: %v", err)
	}

	return nil
}

func send(msg tea.Msg) {
	if program != nil {
		program.Send(msg)
	}
}

func streamForKey(key stream.Key) *stream.Stream[shared.Post] {
	return stream.Posts.Peek(key)
}

func commentStreamForKey(key stream.Key) *stream.Stream[shared.Comment] {
	return stream.PostComments.Peek(key)
}

func commentsKeyFor(tree *comments.Tree) stream.Key {
	return stream.PostCommentsKey(tree.PostPath(), string(tree.Sort()))
}

// watchComments starts the comment stream for a post and feeds arriving
// pages into its thread tree. The subscription is set up synchronously so
// unwatchComments always sees it; only the initial fetch runs async.
func watchComments(postPath string) {
	unwatchComments()

	commentsKey = stream.PostCommentsKey(postPath, string(comments.SortNew))
	tree := comments.ForPost(postPath, comments.SortNew)

	s, created := stream.PostComments.Open(commentsKey)

	syncTree := func() {
		tree.AddPage(s.Items())
		send(commentsUpdatedMsg{})
	}
	unsubComments = s.Subscribe(syncTree)

	go func() {
		if created {
			s.FetchNextPage()
		}
		syncTree()
	}()
}

func unwatchComments() {
	if unsubComments != nil {
		unsubComments()
		unsubComments = nil
	}
}
