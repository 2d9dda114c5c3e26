// Package genome implements the packed RGB color genome carried by every agent.
//
// A genome is a 32-bit value whose top three bytes hold the red, green and
// blue channels. The lowest byte is reserved: it is inherited through
// crossover but never read when comparing or drawing colors.
package genome

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Genome is a packed 0xRRGGBB__ color.
type Genome uint32

// Channel selects one color channel of a genome.
type Channel uint8

const (
	Red Channel = iota
	Green
	Blue
)

// Bit offsets of each channel.
var channelShift = [...]uint{Red: 24, Green: 16, Blue: 8}

const (
	White Genome = 0xFFFFFF00
	Black Genome = 0x00000000
)

// Bits 8..31 carry color; mutation only ever flips one of them.
const (
	colorBitLow   = 8
	colorBitCount = 24
)

// maxDistance is the distance between White and Black, the largest
// possible channel-wise distance.
var maxDistance = Distance(White, Black)

// Encode packs three channels into a genome with a zero low byte.
func Encode(r, g, b uint8) Genome {
	return Genome(uint32(r)<<24 + uint32(g)<<16 + uint32(b)<<8)
}

// Decode extracts the 8-bit value of channel c.
func Decode(g Genome, c Channel) uint8 {
	return uint8(uint32(g) >> channelShift[c] & 0xFF)
}

// R returns the red channel.
func (g Genome) R() uint8 { return Decode(g, Red) }

// G returns the green channel.
func (g Genome) G() uint8 { return Decode(g, Green) }

// B returns the blue channel.
func (g Genome) B() uint8 { return Decode(g, Blue) }

// Distance returns the Euclidean distance between two genomes treated as
// points in RGB space. The result lies in [0, ~441.67].
func Distance(a, b Genome) float64 {
	rd := int(a.R()) - int(b.R())
	gd := int(a.G()) - int(b.G())
	bd := int(a.B()) - int(b.B())
	return math.Sqrt(float64(rd*rd + gd*gd + bd*bd))
}

// Similarity maps distance onto 1 (identical) .. 0 (white vs black).
// The value is not clamped.
func Similarity(a, b Genome) float64 {
	return 1.0 - Distance(a, b)/maxDistance
}

// Mutate flips exactly one color-bearing bit chosen uniformly from bits 8..31.
func Mutate(g Genome, rng *rand.Rand) Genome {
	return g ^ Genome(1)<<(rng.Intn(colorBitCount)+colorBitLow)
}

// Crossover blends two genomes bit by bit: bit i comes from a when bit i
// of mask is set and from b otherwise.
func Crossover(a, b Genome, mask uint32) Genome {
	var mixed uint32
	for i := 31; i >= 0; i-- {
		bit := uint32(1) << i
		if mask&bit != 0 {
			mixed += uint32(a) & bit
		} else {
			mixed += uint32(b) & bit
		}
	}
	return Genome(mixed)
}

// Breed crosses a and b with a freshly drawn random mask.
func Breed(a, b Genome, rng *rand.Rand) Genome {
	return Crossover(a, b, rng.Uint32())
}

// RGBA converts the genome into an opaque color for drawing.
func (g Genome) RGBA() color.RGBA {
	return color.RGBA{R: g.R(), G: g.G(), B: g.B(), A: 0xFF}
}

// Hex formats the genome as #RRGGBB.
func (g Genome) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", g.R(), g.G(), g.B())
}

// String implements fmt.Stringer.
func (g Genome) String() string {
	return g.Hex()
}

// MarshalText writes the full genome, reserved byte included, as 0xRRGGBBLL.
func (g Genome) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("0x%08X", uint32(g))), nil
}

// UnmarshalText accepts any form ParseHex does.
func (g *Genome) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseHex parses "#RRGGBB", "RRGGBB" or "0xRRGGBBLL" into a genome.
// Six-digit forms get a zero low byte.
func ParseHex(s string) (Genome, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parsing genome %q: %w", s, err)
		}
		return Genome(v), nil
	}
	if len(s) != 6 {
		return 0, fmt.Errorf("parsing genome %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing genome %q: %w", s, err)
	}
	return Genome(v << 8), nil
}
