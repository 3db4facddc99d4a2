// Package rgb565 provides the 16-bit packed color format used by the ST7735
// display controller.
//
// A pixel packs 5 bits of red, 6 bits of green and 5 bits of blue into one
// uint16. On the wire the controller expects the high byte first.
// This package provides the Color type, a color model for converting standard
// Go colors, a named palette, and an image.Image implementation whose pixel
// buffer can be streamed to the display without conversion.
package rgb565

import (
	"image"
	"image/color"
)

// Color is a packed RGB565 value: RRRRRGGG GGGBBBBB.
type Color uint16

// New packs 8-bit color components into a Color, truncating each component
// to the depth of its channel.
func New(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// Named colors matching the stock ST7735 demo palette.
const (
	Black       Color = 0x0000
	Navy        Color = 0x000F
	DarkGreen   Color = 0x03E0
	DarkCyan    Color = 0x03EF
	Maroon      Color = 0x7800
	Purple      Color = 0x780F
	Olive       Color = 0x7BE0
	LightGrey   Color = 0xC618
	DarkGrey    Color = 0x7BEF
	Blue        Color = 0x001F
	Green       Color = 0x07E0
	Cyan        Color = 0x07FF
	Red         Color = 0xF800
	Magenta     Color = 0xF81F
	Yellow      Color = 0xFFE0
	White       Color = 0xFFFF
	Orange      Color = 0xFD20
	GreenYellow Color = 0xAFE5
	Pink        Color = 0xFC18
)

// RGBA implements color.Color. The 5- and 6-bit channels are expanded by
// replicating their high bits so that full-scale values map to full-scale
// 8-bit components.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Components unpacks the color into 8-bit components.
func (c Color) Components() (r, g, b uint8) {
	r = uint8(c>>8) & 0xF8
	r |= r >> 5
	g = uint8(c>>3) & 0xFC
	g |= g >> 6
	b = uint8(c<<3) & 0xF8
	b |= b >> 5
	return r, g, b
}

func toColor(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return New(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts any color.Color to a Color.
var Model = color.ModelFunc(toColor)

// Image is an in-memory RGB565 image. Pixels are stored two bytes each,
// high byte first, the byte order the display controller consumes, so Pix
// can be handed to the driver as a pre-encoded bitmap.
type Image struct {
	// Pix holds the pixels, in big-endian RGB565 order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*2].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// NewImage returns a new Image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*2),
		Stride: r.Dx() * 2,
		Rect:   r,
	}
}

// ColorModel implements image.Image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the packed color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return Color(uint16(p.Pix[i])<<8 | uint16(p.Pix[i+1]))
}

// PixOffset returns the index into Pix of the first byte of the pixel at
// (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Set implements draw.Image.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 sets the pixel at (x, y) without a color model conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i] = uint8(c >> 8)
	p.Pix[i+1] = uint8(c)
}
