package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games read actions; only the platform layer knows about keys.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow, W - thrust (asteroids), move up (river)
	ActionDown            // Down arrow, S - move down (river)
	ActionLeft            // Left arrow - rotate left, strafe left, right paddle left
	ActionRight           // Right arrow - rotate right, strafe right, right paddle right
	ActionAltLeft         // A - left paddle left (pinball)
	ActionAltRight        // D - left paddle right (pinball)
	ActionFire            // Space - shoot / launch
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R - restart after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "AltLeft", "AltRight",
	"Fire", "Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one tick. It is a plain
// value: copies are independent and iteration order is fixed.
type InputFrame struct {
	mask uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.mask |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.mask&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.mask == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.mask = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Axis folds a negative/positive action pair into -1, 0 or +1.
func (f InputFrame) Axis(neg, pos Action) int {
	v := 0
	if f.Has(neg) {
		v--
	}
	if f.Has(pos) {
		v++
	}
	return v
}
