package chat

// Turn is one prompt and the completion returned for it.
type Turn struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// History is an ordered list of turns, most recent first.
// It is owned by the caller and only used for display, it is
// never sent to the provider.
type History []Turn

// Record returns a new History with t placed in front.
// The given history is not modified.
func Record(h History, t Turn) History {
	out := make(History, 0, len(h)+1)
	out = append(out, t)
	return append(out, h...)
}

// Clear returns an empty History, regardless of h.
func Clear(h History) History {
	return History{}
}

// Latest returns the most recent turn, if any.
func (h History) Latest() (Turn, bool) {
	if len(h) == 0 {
		return Turn{}, false
	}
	return h[0], true
}
