package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-colour code.
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

// Colours shared by the entity renderers so every variant reads the same way.
const (
	ColorCraft      = ColorBrightCyan
	ColorHazard     = ColorOrange
	ColorProjectile = ColorBrightYellow
	ColorObstacle   = ColorGreen
	ColorHUD        = ColorGray
)
