package svgdoc

import (
	"fmt"

	"github.com/bvannier/sketchvg/svgpath"
)

// RGB is a plain stroke color. The interchange format carries it
// as a 6-hex-digit value.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color in #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// namedColors covers the handful of keywords the subset accepts
// besides hex notation.
var namedColors = map[string]RGB{
	"black":  {0x00, 0x00, 0x00},
	"white":  {0xff, 0xff, 0xff},
	"red":    {0xff, 0x00, 0x00},
	"green":  {0x00, 0x80, 0x00},
	"blue":   {0x00, 0x00, 0xff},
	"yellow": {0xff, 0xff, 0x00},
}

// ParseRGB reads a 6-hex-digit color value or one of the accepted
// color keywords.
func ParseRGB(s string) (RGB, error) {
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, svgpath.NewFormatError("malformed color value " + fmt.Sprintf("%q", s))
	}
	var c RGB
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		hi, ok1 := hexDigit(s[1+2*i])
		lo, ok2 := hexDigit(s[2+2*i])
		if !ok1 || !ok2 {
			return RGB{}, svgpath.NewFormatError("malformed color value " + fmt.Sprintf("%q", s))
		}
		*dst = hi<<4 | lo
	}
	return c, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
