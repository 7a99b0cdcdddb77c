package comments

import (
	"fmt"

	"onuze-cli/shared"
)

// Vote applies the optimistic vote projection to one comment. It returns
// the previous (score, vote) snapshot so a failed request can roll back.
// No other node is touched, so unrelated UI state is preserved.
func (t *Tree) Vote(id string, dir shared.VoteDirection) (prevScore int, prevVote shared.VoteDirection, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.nodes[id]
	if node == nil {
		return 0, shared.VoteNone, fmt.Errorf("comment %s not in tree", id)
	}

	prevScore = node.Score
	prevVote = node.UserVote

	delta, next := shared.ProjectVote(node.UserVote, dir)
	node.Score += delta
	node.UserVote = next

	return prevScore, prevVote, nil
}

// RestoreVote rolls a node back to a snapshot taken by Vote.
func (t *Tree) RestoreVote(id string, score int, vote shared.VoteDirection) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.Score = score
		node.UserVote = vote
	}
}

// Edit sets the node's content and clears its edit UI state, returning the
// previous content for rollback.
func (t *Tree) Edit(id, content string) (prevContent string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.nodes[id]
	if node == nil {
		return "", fmt.Errorf("comment %s not in tree", id)
	}

	prevContent = node.Content
	node.Content = content
	node.IsEditing = false
	node.EditText = ""
	node.EditError = ""

	return prevContent, nil
}

// RestoreEdit rolls back a failed edit and surfaces the error inline.
func (t *Tree) RestoreEdit(id, prevContent, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.Content = prevContent
		node.IsEditing = true
		node.EditError = errMsg
	}
}

// Delete removes the node and its whole subtree.
func (t *Tree) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.nodes[id]
	if node == nil {
		return fmt.Errorf("comment %s not in tree", id)
	}

	t.removeSubtreeLocked(id)

	if node.Parent != nil && t.nodes[*node.Parent] != nil {
		t.children[*node.Parent] = removeId(t.children[*node.Parent], id)
	} else {
		t.roots = removeId(t.roots, id)
	}

	return nil
}

func (t *Tree) removeSubtreeLocked(id string) {
	for _, child := range t.children[id] {
		t.removeSubtreeLocked(child)
	}
	delete(t.children, id)
	delete(t.nodes, id)
}

// InsertReply prepends a new comment under parentId and un-collapses the
// ancestor chain so the reply is visible.
func (t *Tree) InsertReply(parentId string, c shared.Comment) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	parent := t.nodes[parentId]
	if parent == nil {
		return fmt.Errorf("comment %s not in tree", parentId)
	}

	if _, ok := t.nodes[c.Id]; ok {
		return fmt.Errorf("comment %s already in tree", c.Id)
	}

	t.nodes[c.Id] = &Node{Comment: c}
	t.children[parentId] = append([]string{c.Id}, t.children[parentId]...)

	for cur := parent; cur != nil; {
		cur.Collapsed = false
		if cur.Parent == nil {
			break
		}
		cur = t.nodes[*cur.Parent]
	}

	return nil
}

// InsertRoot prepends a new top-level comment.
func (t *Tree) InsertRoot(c shared.Comment) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.nodes[c.Id]; ok {
		return fmt.Errorf("comment %s already in tree", c.Id)
	}

	t.nodes[c.Id] = &Node{Comment: c}
	t.roots = append([]string{c.Id}, t.roots...)

	return nil
}

// ReplaceId swaps an optimistic placeholder id for the server-assigned one
// once the create call succeeds.
func (t *Tree) ReplaceId(tempId string, c shared.Comment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.nodes[tempId]
	if node == nil {
		return
	}

	delete(t.nodes, tempId)
	node.Comment = c
	t.nodes[c.Id] = node

	if ids, ok := t.children[tempId]; ok {
		delete(t.children, tempId)
		t.children[c.Id] = ids
	}

	replaceId := func(ids []string) {
		for i, id := range ids {
			if id == tempId {
				ids[i] = c.Id
			}
		}
	}
	replaceId(t.roots)
	for _, ids := range t.children {
		replaceId(ids)
	}
}

func removeId(ids []string, id string) []string {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}
	return out
}
