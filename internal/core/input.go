package core

// Action represents a logical input intent, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionLeft          // Left arrow, A, H - start moving the paddle left
	ActionRight         // Right arrow, D, L - start moving the paddle right
	ActionStop          // Any key released - halt the paddle
	ActionLaunch        // Space - release the ball from the paddle
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStop:
		return "Stop"
	case ActionLaunch:
		return "Launch"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String. Unknown names map to ActionNone.
func ParseAction(s string) Action {
	switch s {
	case "Left":
		return ActionLeft
	case "Right":
		return ActionRight
	case "Stop":
		return ActionStop
	case "Launch":
		return ActionLaunch
	default:
		return ActionNone
	}
}

// InputFrame holds the intents that arrived during one simulation tick.
// Order is preserved because movement intents override each other: the
// last direction pressed wins.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make([]Action, 0, 4)}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an intent for this frame. ActionNone is dropped.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Actions: make([]Action, len(f.Actions))}
	copy(clone.Actions, f.Actions)
	return clone
}
