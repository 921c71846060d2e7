package model

import "fmt"

// State is the phase of a game after the most recent submission
type State int

const (
	StateInitialize       State = iota // No line drawn yet, nothing selected
	StateValidStartNode                // Start node accepted, awaiting the end node
	StateValidEndNode                  // Line drawn, awaiting the next player's start node
	StateGameOver                      // Neither end of the path can be extended
	StateInvalidStartNode              // Start node rejected, select again
	StateInvalidEndNode                // End node rejected, the turn restarts
	StateError                         // Internal failure, the game cannot continue
)

var stateNames = [...]string{
	StateInitialize:       "INITIALIZE",
	StateValidStartNode:   "VALID_START_NODE",
	StateValidEndNode:     "VALID_END_NODE",
	StateGameOver:         "GAME_OVER",
	StateInvalidStartNode: "INVALID_START_NODE",
	StateInvalidEndNode:   "INVALID_END_NODE",
	StateError:            "ERROR",
}

// States returns every state in declaration order
func States() []State {
	states := make([]State, len(stateNames))
	for i := range stateNames {
		states[i] = State(i)
	}
	return states
}

// IsValid returns true for the enumerated states
func (s State) IsValid() bool {
	return s >= 0 && int(s) < len(stateNames)
}

// IsTerminal returns true once no further submissions are accepted
func (s State) IsTerminal() bool {
	return s == StateGameOver || s == StateError
}

func (s State) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState converts a state name back into a State
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
