package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the composition
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA
	Accent            color.RGBA // Border of the primary button and the add button ring

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextPrimary     color.RGBA
	ButtonBorder          color.RGBA

	// Sticker picker sheet
	ModalBackground color.RGBA
	ModalHeader     color.RGBA
	ModalText       color.RGBA
	Selection       color.RGBA

	// Notices
	NoticeBackground color.RGBA
	NoticeText       color.RGBA
}

// Default returns the hardcoded dark theme used when nothing else is found.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{0x25, 0x29, 0x2E, 0xFF},
		Foreground:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		ToolbarBackground:     color.RGBA{0x25, 0x29, 0x2E, 0xFF},
		Accent:                color.RGBA{0xFF, 0xD3, 0x3D, 0xFF},
		ButtonBackground:      color.RGBA{0x25, 0x29, 0x2E, 0xFF},
		ButtonBackgroundHover: color.RGBA{0x3A, 0x3F, 0x47, 0xFF},
		ButtonBackgroundPress: color.RGBA{0x4A, 0x50, 0x59, 0xFF},
		ButtonText:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		ButtonTextPrimary:     color.RGBA{0x25, 0x29, 0x2E, 0xFF},
		ButtonBorder:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		ModalBackground:       color.RGBA{0x25, 0x29, 0x2E, 0xFF},
		ModalHeader:           color.RGBA{0x46, 0x4C, 0x55, 0xFF},
		ModalText:             color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Selection:             color.RGBA{0xFF, 0xD3, 0x3D, 0xFF},
		NoticeBackground:      color.RGBA{0x00, 0x00, 0x00, 0xC8},
		NoticeText:            color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	}
}
