package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Action is one of the two messages the engine accepts.
type Action int

const (
	ActionHighlight Action = iota + 1
	ActionRemove
)

var ErrUnknownAction = errors.New("unknown action")

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionHighlight:
		return "highlight"
	case ActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction validates an action identifier received from outside.
func ParseAction(name string) (Action, error) {
	switch strings.TrimSpace(name) {
	case "highlight":
		return ActionHighlight, nil
	case "remove":
		return ActionRemove, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}
