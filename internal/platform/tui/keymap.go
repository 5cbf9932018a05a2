package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

// gameBindings maps key names to in-game actions. Terminals report no key
// releases, so the games latch held directions themselves.
var gameBindings = map[string]core.Action{
	"ctrl+c": core.ActionQuit,
	"q":      core.ActionQuit,
	"up":     core.ActionUp,
	"w":      core.ActionUp,
	"down":   core.ActionDown,
	"s":      core.ActionDown,
	"left":   core.ActionLeft,
	"right":  core.ActionRight,
	"a":      core.ActionAltLeft,
	"d":      core.ActionAltRight,
	" ":      core.ActionFire,
	"enter":  core.ActionConfirm,
	"esc":    core.ActionBack,
	"b":      core.ActionBack,
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// menuBindings maps key names to menu actions, with vim-style j/k.
var menuBindings = map[string]MenuAction{
	"ctrl+c": MenuActionQuit,
	"q":      MenuActionQuit,
	"up":     MenuActionUp,
	"w":      MenuActionUp,
	"k":      MenuActionUp,
	"down":   MenuActionDown,
	"s":      MenuActionDown,
	"j":      MenuActionDown,
	"enter":  MenuActionSelect,
	" ":      MenuActionSelect,
	"esc":    MenuActionBack,
	"b":      MenuActionBack,
	"tab":    MenuActionScoreboard,
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{game: gameBindings, menu: menuBindings}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.game[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return km.menu[msg.String()]
}
