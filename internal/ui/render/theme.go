package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	MutedFg     tcell.Color
	AccentFg    tcell.Color
	ErrorFg     tcell.Color
	WarningFg   tcell.Color
	DrawerBg    tcell.Color
	DrawerFg    tcell.Color
	InputBg     tcell.Color
	InputFg     tcell.Color
	PageBg      tcell.Color
	PageFg      tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		MutedFg:     tcell.ColorLightSlateGray,
		AccentFg:    tcell.Color33,
		ErrorFg:     tcell.ColorRed,
		WarningFg:   tcell.Color214,
		DrawerBg:    tcell.ColorDefault,
		DrawerFg:    tcell.ColorDefault,
		InputBg:     tcell.Color236,
		InputFg:     tcell.Color252,
		PageBg:      tcell.Color255, // paper
		PageFg:      tcell.Color235,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
	}
}
