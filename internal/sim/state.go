package sim

// Phase is the lifecycle state of a simulation run.
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Machine is the two-state lifecycle. GameOver is terminal: a new
// simulation has to be built to play again.
type Machine struct {
	phase  Phase
	reason string
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Over reports whether the run has ended.
func (m *Machine) Over() bool {
	return m.phase == PhaseGameOver
}

// Reason returns why the run ended, or "" while playing.
func (m *Machine) Reason() string {
	return m.reason
}

// End moves Playing to GameOver. It returns true only the first time.
func (m *Machine) End(reason string) bool {
	if m.phase == PhaseGameOver {
		return false
	}
	m.phase = PhaseGameOver
	m.reason = reason
	return true
}
