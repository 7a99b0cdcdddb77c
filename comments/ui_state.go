package comments

// UI state setters. Each touches exactly one node; state on every other
// node is left alone.

func (t *Tree) StartEditing(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.IsEditing = true
		node.EditText = node.Content
		node.EditError = ""
	}
}

func (t *Tree) CancelEditing(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.IsEditing = false
		node.EditText = ""
		node.EditError = ""
	}
}

func (t *Tree) SetEditText(id, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.EditText = text
	}
}

func (t *Tree) ShowReplyForm(id string, show bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.ShowReplyForm = show
		if !show {
			node.ReplyText = ""
			node.ReplyError = ""
		}
	}
}

func (t *Tree) SetReplyText(id, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.ReplyText = text
	}
}

func (t *Tree) SetReplyError(id, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.ReplyError = msg
		node.IsSubmittingReply = false
	}
}

func (t *Tree) SetSubmittingReply(id string, submitting bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.IsSubmittingReply = submitting
	}
}

func (t *Tree) SetCollapsed(id string, collapsed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node := t.nodes[id]; node != nil {
		node.Collapsed = collapsed
	}
}
