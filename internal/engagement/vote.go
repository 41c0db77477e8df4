package engagement

// VoteState is a user's current vote on a recipe.
type VoteState string

const (
	VoteNone    VoteState = "none"
	VoteLike    VoteState = "like"
	VoteDislike VoteState = "dislike"
)

// Valid reports whether s is one of the three known vote states.
func (s VoteState) Valid() bool {
	return s == VoteNone || s == VoteLike || s == VoteDislike
}

// VoteDelta is the counter adjustment a vote transition produces. The caller
// applies it to the stored like/dislike counters; the switch case moves both
// counters and must be persisted as a single write.
type VoteDelta struct {
	Likes    int
	Dislikes int
}

// ApplyVote computes the next vote state and counter deltas for a requested
// action. It is total over the input space: every (previous, action) pair
// with action being like or dislike yields a result.
//
// Repeating the current vote toggles it off, voting from none turns it on,
// and voting the opposite way switches, decrementing the old counter and
// incrementing the new one in the same transition.
func ApplyVote(previous, action VoteState) (VoteState, VoteDelta) {
	if previous == action {
		// Toggle off.
		if action == VoteLike {
			return VoteNone, VoteDelta{Likes: -1}
		}
		return VoteNone, VoteDelta{Dislikes: -1}
	}

	if previous == VoteNone {
		// Turn on.
		if action == VoteLike {
			return VoteLike, VoteDelta{Likes: 1}
		}
		return VoteDislike, VoteDelta{Dislikes: 1}
	}

	// Switch: previous is the opposite of action.
	if action == VoteLike {
		return VoteLike, VoteDelta{Likes: 1, Dislikes: -1}
	}
	return VoteDislike, VoteDelta{Likes: -1, Dislikes: 1}
}
