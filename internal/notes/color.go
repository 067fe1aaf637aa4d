package notes

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid color")

var (
	hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	hslPattern = regexp.MustCompile(`^hsla?\(\s*(\d+(?:\.\d+)?)(?:deg)?\s*[, ]\s*(\d+(?:\.\d+)?)%\s*[, ]\s*(\d+(?:\.\d+)?)%\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
	rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*[, ]\s*(\d{1,3})\s*(?:[,/]\s*[\d.]+%?\s*)?\)$`)
)

// namedColors covers the CSS names a user is likely to type.
var namedColors = map[string]string{
	"yellow":      "#ffff00",
	"gold":        "#ffd700",
	"orange":      "#ffa500",
	"red":         "#ff0000",
	"pink":        "#ffc0cb",
	"hotpink":     "#ff69b4",
	"lime":        "#00ff00",
	"green":       "#008000",
	"lightgreen":  "#90ee90",
	"aqua":        "#00ffff",
	"cyan":        "#00ffff",
	"lightblue":   "#add8e6",
	"skyblue":     "#87ceeb",
	"blue":        "#0000ff",
	"violet":      "#ee82ee",
	"plum":        "#dda0dd",
	"lavender":    "#e6e6fa",
	"white":       "#ffffff",
	"silver":      "#c0c0c0",
	"gray":        "#808080",
	"grey":        "#808080",
	"black":       "#000000",
	"khaki":       "#f0e68c",
	"lightyellow": "#ffffe0",
	"peachpuff":   "#ffdab9",
}

// ParseColor converts a CSS color (hex, rgb(), hsl() or a common name) into a
// colorful.Color. Alpha components are accepted and ignored.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if hex, ok := namedColors[lower]; ok {
		return colorful.Hex(hex)
	}

	if hexPattern.MatchString(s) {
		digits := s[1:]
		switch len(digits) {
		case 3, 4:
			digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
		case 8:
			digits = digits[:6]
		}
		return colorful.Hex("#" + digits)
	}

	if m := hslPattern.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		sat, _ := strconv.ParseFloat(m[2], 64)
		light, _ := strconv.ParseFloat(m[3], 64)
		if sat > 100 || light > 100 {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		for h >= 360 {
			h -= 360
		}
		return colorful.Hsl(h, sat/100, light/100), nil
	}

	if m := rgbPattern.FindStringSubmatch(lower); m != nil {
		var ch [3]float64
		for i := 0; i < 3; i++ {
			v, _ := strconv.Atoi(m[i+1])
			if v > 255 {
				return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			ch[i] = float64(v) / 255
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
	}

	return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// NormalizeColor validates a CSS color and returns it trimmed, as typed.
func NormalizeColor(s string) (string, error) {
	if _, err := ParseColor(s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// TerminalHex returns a "#rrggbb" form of a CSS color for terminal styling,
// falling back to the default highlight color when s cannot be parsed.
func TerminalHex(s string) string {
	c, err := ParseColor(s)
	if err != nil {
		c, _ = ParseColor(DefaultHighlightColor)
	}
	return c.Clamped().Hex()
}
