package playtest

import "fmt"

// Action names an engine operation for text and wire front ends
type Action string

const (
	ActionMulligan Action = "mulligan"
	ActionKeep     Action = "keep"
	ActionBottom   Action = "bottom"
	ActionDraw     Action = "draw"
	ActionPlay     Action = "play"
	ActionDestroy  Action = "destroy"
	ActionDiscard  Action = "discard"
	ActionBounce   Action = "bounce"
	ActionReturn   Action = "return"
	ActionReset    Action = "reset"
	ActionEnd      Action = "end"
)

// Apply runs the named action. index is ignored by actions that take none.
// An unknown action is an error; a refused action is not.
func (e *Engine) Apply(action Action, index int) (bool, error) {
	switch action {
	case ActionMulligan:
		return e.Mulligan(), nil
	case ActionKeep:
		return e.KeepHand(), nil
	case ActionBottom:
		return e.PutOnBottom(index), nil
	case ActionDraw:
		return e.DrawStep(), nil
	case ActionPlay:
		return e.PlayCard(index), nil
	case ActionDestroy:
		return e.DestroyCard(index), nil
	case ActionDiscard:
		return e.DiscardFromHand(index), nil
	case ActionBounce:
		return e.BounceToHand(index), nil
	case ActionReturn:
		return e.ReturnFromGraveyard(index), nil
	case ActionReset:
		if !e.active {
			return false, nil
		}
		e.Reset()
		return true, nil
	case ActionEnd:
		e.End()
		return true, nil
	default:
		return false, fmt.Errorf("unknown playtest action %q", action)
	}
}
