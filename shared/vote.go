package shared

// ProjectVote computes the optimistic score delta and resulting vote for a
// requested direction given the previous vote. Requesting the current
// direction cancels it. The projection is its own inverse: applying the
// opposite transition returns to the original state.
//
//	prev \ dir |  up          | down
//	none       | +1, up       | -1, down
//	up         | -1, none     | -2, down
//	down       | +2, up       | +1, none
func ProjectVote(prev, dir VoteDirection) (delta int, next VoteDirection) {
	switch prev {
	case VoteUp:
		if dir == VoteUp {
			return -1, VoteNone
		}
		return -2, VoteDown
	case VoteDown:
		if dir == VoteUp {
			return 2, VoteUp
		}
		return 1, VoteNone
	default:
		if dir == VoteUp {
			return 1, VoteUp
		}
		return -1, VoteDown
	}
}
