package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/stickersmash/internal/sticker"
)

// KeyShortcut identifies a key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// command is the outcome of a key press.
type command struct {
	Action Action
	Choice sticker.Choice
}

var chordShortcuts = map[KeyShortcut]Action{
	{Code: key.CodeS, Modifiers: key.ModControl}: ActionSave,
	{Code: key.CodeC, Modifiers: key.ModControl}: ActionCopy,
	{Code: key.CodeQ, Modifiers: key.ModControl}: ActionQuit,
	{Code: key.CodeS, Modifiers: key.ModMeta}:    ActionSave,
	{Code: key.CodeC, Modifiers: key.ModMeta}:    ActionCopy,
}

var runeShortcuts = map[rune]Action{
	'c': ActionChoose,
	'u': ActionUse,
	'r': ActionReset,
	'a': ActionAdd,
	'+': ActionAdd,
	'q': ActionQuit,
}

// commandForKey maps a key event to a command. Number keys choose a sticker
// only while the picker is open.
func commandForKey(e key.Event, modal bool) (command, bool) {
	if e.Direction != key.DirPress {
		return command{}, false
	}
	if a, ok := chordShortcuts[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]; ok {
		return command{Action: a}, true
	}
	if e.Modifiers&(key.ModControl|key.ModMeta|key.ModAlt) != 0 {
		return command{}, false
	}
	if e.Code == key.CodeEscape {
		if modal {
			return command{Action: ActionClosePicker}, true
		}
		return command{}, false
	}
	if modal && e.Rune >= '1' && e.Rune <= '0'+sticker.Count {
		return command{Action: ActionSelect, Choice: sticker.Choice(e.Rune - '0')}, true
	}
	if a, ok := runeShortcuts[unicode.ToLower(e.Rune)]; ok {
		return command{Action: a}, true
	}
	return command{}, false
}
