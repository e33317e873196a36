package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PlayerColor returns the color used for a player slot.
func PlayerColor(id PlayerID) Color {
	switch id {
	case Player1:
		return ColorBrightCyan
	case Player2:
		return ColorBrightMagenta
	case Player3:
		return ColorBrightYellow
	default:
		return ColorWhite
	}
}
