package session

import (
	"github.com/example/stickersmash/internal/export"
	"github.com/example/stickersmash/internal/sticker"
)

// Msg is a request to change the session state.
type Msg interface {
	isMsg()
}

type (
	// ImagePicked reports a successful pick.
	ImagePicked struct{ URI string }
	// PickCancelled reports a dismissed picker or refused access.
	PickCancelled struct{}
	// UsePhoto keeps the current photo (or placeholder) and reveals the
	// edit toolbar.
	UsePhoto struct{}
	// Reset returns to the photo choice toolbar.
	Reset struct{}
	// OpenPicker shows the sticker picker.
	OpenPicker struct{}
	// ClosePicker hides the sticker picker.
	ClosePicker struct{}
	// SelectSticker places a sticker and closes the picker.
	SelectSticker struct{ Choice sticker.Choice }
	// DragStart begins moving the sticker.
	DragStart struct{}
	// DragMove carries the displacement since DragStart.
	DragMove struct{ DX, DY float64 }
	// DragEnd finishes moving the sticker.
	DragEnd struct{}
	// DoubleTap doubles the sticker size.
	DoubleTap struct{}
	// ExportDone reports a completed export.
	ExportDone struct{ Result export.Result }
	// ExportFailed reports a failed export.
	ExportFailed struct {
		Op  string
		Err error
	}
	// DismissNotice clears the current notice.
	DismissNotice struct{}
)

func (ImagePicked) isMsg()   {}
func (PickCancelled) isMsg() {}
func (UsePhoto) isMsg()      {}
func (Reset) isMsg()         {}
func (OpenPicker) isMsg()    {}
func (ClosePicker) isMsg()   {}
func (SelectSticker) isMsg() {}
func (DragStart) isMsg()     {}
func (DragMove) isMsg()      {}
func (DragEnd) isMsg()       {}
func (DoubleTap) isMsg()     {}
func (ExportDone) isMsg()    {}
func (ExportFailed) isMsg()  {}
func (DismissNotice) isMsg() {}
