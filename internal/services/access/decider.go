package access

// State is a user's shared-channel standing for one date.
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// StateFromFlag maps the persisted has_access flag onto a State.
func StateFromFlag(hasAccess bool) State {
	if hasAccess {
		return Unlocked
	}
	return Locked
}

// Action is what the caller must do after a decision.
type Action int

const (
	// Hold means no external call and no state change.
	Hold Action = iota
	// Grant means add the user to the shared channel, then persist the flag.
	Grant
	// Revoke means remove the user from the shared channel, then clear the flag.
	Revoke
)

func (a Action) String() string {
	switch a {
	case Grant:
		return "grant"
	case Revoke:
		return "revoke"
	default:
		return "hold"
	}
}

// Decide is the entry-path transition function. Pure. Grant fires only on
// the Locked→Unlocked edge; once unlocked, further entries hold so side
// effects are never duplicated. Totals only grow within a day, so the entry
// path never revokes; only the daily boundary does.
func Decide(current State, totalWords, threshold int) Action {
	if current == Locked && totalWords >= threshold {
		return Grant
	}
	return Hold
}

// DecideAtBoundary is the forced transition when the daily boundary fires,
// regardless of word total.
func DecideAtBoundary(current State) Action {
	if current == Unlocked {
		return Revoke
	}
	return Hold
}
