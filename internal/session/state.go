// Package session owns the editing state of one StickerSmash window. All
// mutation goes through Controller.Apply, so the state has a single owner
// no matter which surface (window, script, one-shot command) drives it.
package session

import (
	"github.com/example/stickersmash/internal/sticker"
)

// Mode selects which toolbar is offered.
type Mode int

const (
	// ModeChoosePhoto offers "Choose a photo" and "Use this photo".
	ModeChoosePhoto Mode = iota
	// ModeEditOptions offers reset, add sticker and save.
	ModeEditOptions
)

func (m Mode) String() string {
	if m == ModeEditOptions {
		return "edit-options"
	}
	return "choose-photo"
}

// NoticeKind classifies a user-visible message.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeNoImage
	NoticeSaved
	NoticeCopied
)

// Notice texts.
const (
	TextNoImage = "You did not select any image."
	TextSaved   = "Saved!"
	TextCopied  = "Copied!"
)

// Notice is the most recent message for the user. Seq increases with every
// notice so observers can tell a repeated message from a stale one.
type Notice struct {
	Kind NoticeKind
	Text string
	Seq  int
}

// State is a snapshot of the editing session.
type State struct {
	// Image is the chosen photo's URI. Empty shows the placeholder.
	Image        string
	Mode         Mode
	Sticker      sticker.Choice
	Transform    sticker.State
	ModalVisible bool
	Notice       Notice
}

// NewState returns the state of a freshly opened window.
func NewState() State {
	return State{Mode: ModeChoosePhoto, Transform: sticker.NewState()}
}

func (s *State) notify(kind NoticeKind, text string) {
	s.Notice = Notice{Kind: kind, Text: text, Seq: s.Notice.Seq + 1}
}
