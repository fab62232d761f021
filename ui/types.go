// Package ui is the raylib front-end: it draws session views, turns pointer
// drags into steering and runs the menu between sessions.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color

	// Arena palette
	Floor      rl.Color
	GridLine   rl.Color
	Boundary   rl.Color
	Player     rl.Color
	PlayerBody rl.Color
	Bot        rl.Color
	BotWeak    rl.Color // Bots the player can eat
	Boss       rl.Color
	Food       rl.Color
	Chest      rl.Color
	Magnet     rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:    rl.Color{R: 200, G: 100, B: 100, A: 255},

		Floor:      rl.Color{R: 18, G: 28, B: 22, A: 255},
		GridLine:   rl.Color{R: 30, G: 44, B: 36, A: 255},
		Boundary:   rl.Color{R: 230, G: 60, B: 60, A: 255},
		Player:     rl.Color{R: 80, G: 200, B: 255, A: 255},
		PlayerBody: rl.Color{R: 50, G: 140, B: 200, A: 255},
		Bot:        rl.Color{R: 230, G: 120, B: 70, A: 255},
		BotWeak:    rl.Color{R: 140, G: 210, B: 90, A: 255},
		Boss:       rl.Color{R: 170, G: 60, B: 220, A: 255},
		Food:       rl.Color{R: 250, G: 220, B: 90, A: 255},
		Chest:      rl.Color{R: 255, G: 170, B: 30, A: 255},
		Magnet:     rl.Color{R: 80, G: 200, B: 255, A: 50},

		Padding:        10,
		LineHeight:     20,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       16,
		HeaderFontSize: 20,
	}
}
