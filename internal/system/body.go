package system

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
)

// BodyID is a stable index into a System's arena. Stars come first.
type BodyID int

type Kind uint8

const (
	KindStar Kind = iota
	KindPlanet
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindPlanet:
		return "planet"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "star":
		*k = KindStar
	case "planet":
		*k = KindPlanet
	default:
		return fmt.Errorf("unknown body kind %q", b)
	}
	return nil
}

// Color is a 24-bit RGB tint.
type Color uint32

// ParseColor accepts "#rrggbb", "0xrrggbb" or bare hex digits.
func ParseColor(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) == 0 || len(h) > 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Orbit is the planet-only payload of a Body.
type Orbit struct {
	Elements orbit.Elements
	Phase    float64
}

// Body is a star or a planet. Only planets carry an orbit.
type Body struct {
	ID       BodyID
	Name     string
	Kind     Kind
	Scale    float64
	Tint     Color
	Position r3.Vec

	orbit *Orbit
}

// Orbit returns the planet payload; ok is false for stars.
func (b Body) Orbit() (Orbit, bool) {
	if b.orbit == nil {
		return Orbit{}, false
	}
	return *b.orbit, true
}

func (b Body) IsPlanet() bool { return b.Kind == KindPlanet }

func (b Body) clone() Body {
	c := b
	if b.orbit != nil {
		o := *b.orbit
		c.orbit = &o
	}
	return c
}

func finite(v r3.Vec) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
