package tlp

import (
	"encoding/json"
	"fmt"
)

// Color is an RGB font color.
type Color struct {
	R, G, B uint8
}

// Banner colors. Values match the named RGB colors of desktop spreadsheet hosts.
var (
	ColorDarkGray = Color{0xA9, 0xA9, 0xA9}
	ColorGreen    = Color{0x00, 0x80, 0x00}
	ColorOrange   = Color{0xFF, 0xA5, 0x00}
	ColorRed      = Color{0xFF, 0x00, 0x00}
)

// Hex returns the color as uppercase RRGGBB without a leading '#'.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return "#" + c.Hex()
}

// MarshalJSON encodes the color as "#RRGGBB".
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
