package comments

import (
	"sort"
	"sync"

	"onuze-cli/shared"
)

type Sort string

const (
	SortNew           Sort = "new"
	SortOld           Sort = "old"
	SortTop           Sort = "top"
	SortHot           Sort = "hot"
	SortControversial Sort = "controversial"
)

// Node is one comment plus its client-side UI state. UI state lives on the
// node so it survives pagination merges and mutations to other nodes.
type Node struct {
	shared.Comment

	IsEditing         bool
	EditText          string
	EditError         string
	ShowReplyForm     bool
	ReplyText         string
	ReplyError        string
	IsSubmittingReply bool
	Collapsed         bool
}

// Tree is the comment forest for one post, built from flat paginated
// batches. Comments are stored in an id-indexed table with tree edges
// materialized from a children index, so cross-references are by id and
// the structure stays acyclic by construction.
type Tree struct {
	mu sync.Mutex

	postPath string
	sort     Sort

	nodes    map[string]*Node
	children map[string][]string
	roots    []string
}

func NewTree(postPath string, sort Sort) *Tree {
	return &Tree{
		postPath: postPath,
		sort:     sort,
		nodes:    map[string]*Node{},
		children: map[string][]string{},
	}
}

func (t *Tree) PostPath() string { return t.postPath }
func (t *Tree) Sort() Sort       { return t.sort }

// AddPage merges one flat server page into the forest. A comment whose
// parent resolves in the union of the existing tree and the batch attaches
// as a child; anything else becomes a root. Roots already present keep
// their position; new roots are appended in the selected sort's order.
// Comments already in the tree are skipped so their UI state is untouched.
func (t *Tree) AddPage(batch []shared.Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	inBatch := map[string]bool{}
	for _, c := range batch {
		inBatch[c.Id] = true
	}

	var added []*Node
	for _, c := range batch {
		if _, ok := t.nodes[c.Id]; ok {
			continue
		}
		node := &Node{Comment: c}
		t.nodes[c.Id] = node
		added = append(added, node)
	}

	var newRoots []*Node
	parentsTouched := map[string]bool{}

	for _, node := range added {
		parent := node.Parent
		if parent != nil && (inBatch[*parent] || t.nodes[*parent] != nil) {
			t.children[*parent] = append(t.children[*parent], node.Id)
			parentsTouched[*parent] = true
		} else {
			newRoots = append(newRoots, node)
		}
	}

	// replies are always newest-first regardless of the root sort
	for parent := range parentsTouched {
		t.sortChildrenLocked(parent)
	}

	t.sortRootBatchLocked(newRoots)
	for _, node := range newRoots {
		t.roots = append(t.roots, node.Id)
	}
}

func (t *Tree) sortChildrenLocked(parent string) {
	ids := t.children[parent]
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// sortRootBatchLocked orders newly-added roots among themselves. Roots from
// earlier pages are never reordered; hot and controversial preserve the
// server-assigned order.
func (t *Tree) sortRootBatchLocked(batch []*Node) {
	switch t.sort {
	case SortNew:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].CreatedAt.After(batch[j].CreatedAt)
		})
	case SortOld:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].CreatedAt.Before(batch[j].CreatedAt)
		})
	case SortTop:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Score > batch[j].Score
		})
	}
}

// Get returns the node for id, or nil. The pointer stays owned by the tree;
// callers mutate only through tree operations.
func (t *Tree) Get(id string) *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodes[id]
}

// Len is the number of comments in the forest.
func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// Ids returns the set of comment ids present in the tree.
func (t *Tree) Ids() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make(map[string]bool, len(t.nodes))
	for id := range t.nodes {
		ids[id] = true
	}
	return ids
}

// Walk visits every node depth-first: roots in order, then each node's
// replies, with the node's depth (0 for roots).
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		node := t.nodes[id]
		if node == nil {
			return
		}
		fn(node, depth)
		for _, child := range t.children[id] {
			visit(child, depth+1)
		}
	}

	for _, id := range t.roots {
		visit(id, 0)
	}
}

// Replies returns the ordered child ids of id.
func (t *Tree) Replies(id string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.children[id]...)
}

// Roots returns the ordered root ids.
func (t *Tree) Roots() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.roots...)
}

// DescendantCount is the recursive reply count under id, for "view N more
// replies" affordances.
func (t *Tree) DescendantCount(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.descendantCountLocked(id)
}

func (t *Tree) descendantCountLocked(id string) int {
	count := 0
	for _, child := range t.children[id] {
		count += 1 + t.descendantCountLocked(child)
	}
	return count
}
