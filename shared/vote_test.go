package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectVote(t *testing.T) {
	tests := []struct {
		name      string
		prev      VoteDirection
		dir       VoteDirection
		wantDelta int
		wantNext  VoteDirection
	}{
		{"first upvote", VoteNone, VoteUp, 1, VoteUp},
		{"first downvote", VoteNone, VoteDown, -1, VoteDown},
		{"cancel upvote", VoteUp, VoteUp, -1, VoteNone},
		{"cancel downvote", VoteDown, VoteDown, 1, VoteNone},
		{"flip up to down", VoteUp, VoteDown, -2, VoteDown},
		{"flip down to up", VoteDown, VoteUp, 2, VoteUp},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			delta, next := ProjectVote(test.prev, test.dir)
			assert.Equal(t, test.wantDelta, delta)
			assert.Equal(t, test.wantNext, next)
		})
	}
}

// Repeating a vote is a toggle: score and state land back where they
// started.
func TestProjectVoteToggleRoundTrip(t *testing.T) {
	for _, dir := range []VoteDirection{VoteUp, VoteDown} {
		score := 10

		delta, next := ProjectVote(VoteNone, dir)
		score += delta

		delta, next = ProjectVote(next, dir)
		score += delta

		assert.Equal(t, 10, score)
		assert.Equal(t, VoteNone, next)
	}
}
