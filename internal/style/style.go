package style

import (
	"strconv"
	"strings"
)

// SectionClass is the class every page section carries.
const SectionClass = "section"

// RGBA is an 8-bit color with alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Computed is the resolved look of one section.
type Computed struct {
	Background RGBA
	Color      RGBA
	Accent     RGBA
	TitleSize  int32
	BodySize   int32
	Padding    int32
	// Align is "left" or "center".
	Align string
}

// Default is used for any property the stylesheet does not set.
func Default() Computed {
	return Computed{
		Background: RGBA{0, 0, 0, 0},
		Color:      RGBA{255, 255, 255, 255},
		Accent:     RGBA{255, 99, 71, 255},
		TitleSize:  48,
		BodySize:   22,
		Padding:    48,
		Align:      "left",
	}
}

// Section resolves the style for the section with the given id.
func (s *Stylesheet) Section(id string) Computed {
	return Resolve(s.Props(SectionClass, id))
}

// Resolve builds a Computed from merged properties.
func Resolve(props map[string]string) Computed {
	out := Default()
	for k, v := range props {
		switch k {
		case "background", "background-color":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "accent-color", "border-color":
			if c, ok := ParseHexColor(v); ok {
				out.Accent = c
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.BodySize = n
			}
		case "--title-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.TitleSize = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "text-align":
			if v == "center" || v == "left" {
				out.Align = v
			}
		}
	}
	// Opacity replaces the background alpha, whichever rule set the color.
	if v, ok := props["opacity"]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f >= 0 && f <= 1 {
			out.Background.A = uint8(f*255 + 0.5)
		}
	}
	return out
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return RGBA{}, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexByte(hex[i]); !ok {
			return RGBA{}, false
		}
	}
	pair := func(i int) uint8 {
		hi, _ := hexByte(hex[i])
		lo, _ := hexByte(hex[i+1])
		return hi<<4 | lo
	}
	switch len(hex) {
	case 3:
		r, _ := hexByte(hex[0])
		g, _ := hexByte(hex[1])
		b, _ := hexByte(hex[2])
		return RGBA{r * 17, g * 17, b * 17, 255}, true
	case 6:
		return RGBA{pair(0), pair(2), pair(4), 255}, true
	case 8:
		return RGBA{pair(0), pair(2), pair(4), pair(6)}, true
	}
	return RGBA{}, false
}

func hexByte(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParsePx parses a number with an optional "px" suffix. Unitless is pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}
