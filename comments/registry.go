package comments

import "sync"

var registryMu sync.Mutex
var trees = map[string]*Tree{}

// ForPost returns the process-wide tree for a post, creating it on first
// use. Changing the sort resets the tree: pages are cleared and the caller
// is expected to refetch the comment stream from the start.
func ForPost(postPath string, sort Sort) *Tree {
	registryMu.Lock()
	defer registryMu.Unlock()

	t, ok := trees[postPath]
	if ok && t.sort == sort {
		return t
	}

	t = NewTree(postPath, sort)
	trees[postPath] = t
	return t
}

// Drop removes the tree for a post, e.g. after deleting the post.
func Drop(postPath string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(trees, postPath)
}
