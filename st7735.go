package st7735

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/limingjie/CH32V003-ST7735-Driver/rgb565"
)

// System function command set, write commands only.
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
const (
	cmdSLPIN   = 0x10 // Sleep In
	cmdSLPOUT  = 0x11 // Sleep Out
	cmdNORON   = 0x13 // Normal Display Mode On
	cmdINVOFF  = 0x20 // Display Inversion Off
	cmdINVON   = 0x21 // Display Inversion On
	cmdDISPOFF = 0x28 // Display Off
	cmdDISPON  = 0x29 // Display On
	cmdCASET   = 0x2A // Column Address Set
	cmdRASET   = 0x2B // Row Address Set
	cmdRAMWR   = 0x2C // Memory Write
	cmdMADCTL  = 0x36 // Memory Data Access Control
	cmdCOLMOD  = 0x3A // Interface Pixel Format

	cmdGMCTRP1 = 0xE0 // Gamma '+' Polarity Correction
	cmdGMCTRN1 = 0xE1 // Gamma '-' Polarity Correction
)

// MADCTL bits.
const (
	madctlMH  = 0x04 // Refresh left to right
	madctlBGR = 0x08 // BGR color filter order
	madctlML  = 0x10 // Scan address increase
	madctlMV  = 0x20 // X-Y exchange
	madctlMX  = 0x40 // X mirror
	madctlMY  = 0x80 // Y mirror
)

// COLMOD parameter for 16-bit/pixel.
const colmod16bpp = 0x05

// Gamma correction tables. Not strictly necessary but they provide accurate
// colors on the 0.96" panel.
var (
	gammaPositive = []byte{
		0x09, 0x16, 0x09, 0x20, 0x21, 0x1B, 0x13, 0x19,
		0x17, 0x15, 0x1E, 0x2B, 0x04, 0x05, 0x02, 0x0E,
	}
	gammaNegative = []byte{
		0x0B, 0x14, 0x08, 0x1E, 0x22, 0x1D, 0x18, 0x1E,
		0x1B, 0x1A, 0x24, 0x2B, 0x06, 0x06, 0x02, 0x0F,
	}
)

// Mandatory controller delays.
const (
	resetDelay    = 50 * time.Millisecond
	sleepOutDelay = 120 * time.Millisecond
	modeDelay     = 10 * time.Millisecond
)

// Rotation selects the panel orientation. It is fixed at construction time;
// the MADCTL scan direction and the visible-area offset both depend on it.
type Rotation int

const (
	// Landscape is the 160x80 orientation with the connector on the right.
	Landscape Rotation = iota
	// Portrait is the 80x160 orientation.
	Portrait
	// LandscapeFlipped is Landscape rotated by 180°.
	LandscapeFlipped
	// PortraitFlipped is Portrait rotated by 180°.
	PortraitFlipped
)

func (r Rotation) madctl() byte {
	switch r {
	case Portrait:
		return madctlBGR
	case LandscapeFlipped:
		return madctlMX | madctlMV | madctlBGR
	case PortraitFlipped:
		return madctlMX | madctlMY | madctlBGR
	default:
		return madctlMY | madctlMV | madctlBGR
	}
}

func (r Rotation) landscape() bool {
	return r == Landscape || r == LandscapeFlipped
}

// DefaultOpts is the recommended configuration for the 0.96" 160x80 panel.
//
// The visible area of that panel does not start at panel memory address
// zero: it sits 1 column and 26 rows into the controller RAM in landscape
// orientation. The offsets swap in portrait orientation.
var DefaultOpts = Opts{
	W:       160,
	H:       80,
	XOffset: 1,
	YOffset: 26,
	Speed:   12 * physic.MegaHertz,
}

// Opts is the configuration for the ST7735 display.
type Opts struct {
	// Display dimensions in pixels, after rotation.
	W int
	H int

	// XOffset, YOffset locate the visible area in panel memory. They are
	// fixed by the physical wiring of the module and added to every public
	// coordinate before a window command is issued.
	XOffset int
	YOffset int

	// Rotation selects one of the four supported scan orientations.
	Rotation Rotation

	// Speed is the SPI clock frequency. Defaults to 12MHz; the controller
	// accepts writes up to 15MHz.
	Speed physic.Frequency

	// RST is the reset pin. Optional; if nil the driver relies on
	// power-on reset.
	RST gpio.PinIO

	// CS is a manually driven chip-select pin, for wirings where the SPI
	// controller's own chip select is not connected to the panel. Optional;
	// if nil the panel is assumed permanently selected (CS tied to ground)
	// or selected by the SPI controller itself.
	CS gpio.PinOut
}

func (o *Opts) setDefaults() {
	if o.W == 0 && o.H == 0 {
		if o.Rotation.landscape() {
			o.W, o.H = DefaultOpts.W, DefaultOpts.H
			o.XOffset, o.YOffset = DefaultOpts.XOffset, DefaultOpts.YOffset
		} else {
			o.W, o.H = DefaultOpts.H, DefaultOpts.W
			o.XOffset, o.YOffset = DefaultOpts.YOffset, DefaultOpts.XOffset
		}
	}
	if o.Speed == 0 {
		o.Speed = DefaultOpts.Speed
	}
}

// Controller RAM is 132x162; with the X-Y exchange bit either axis can be
// the long one, so both dimensions share the larger bound.
const maxRAMDim = 162

func (o *Opts) validate() error {
	if o.W <= 0 || o.W > maxRAMDim {
		return fmt.Errorf("st7735: width must be between 1 and %d", maxRAMDim)
	}
	if o.H <= 0 || o.H > maxRAMDim {
		return fmt.Errorf("st7735: height must be between 1 and %d", maxRAMDim)
	}
	if o.XOffset < 0 || o.YOffset < 0 {
		return errors.New("st7735: offsets must not be negative")
	}
	if o.Rotation < Landscape || o.Rotation > PortraitFlipped {
		return errors.New("st7735: invalid rotation")
	}
	return nil
}

// Dev is the device handle for the ST7735 display.
//
// All driver state lives here: there is exactly one scratch buffer, cursor
// and color pair per device, and nothing at package level.
type Dev struct {
	// Communication
	c  conn.Conn   // SPI connection
	dc gpio.PinOut // Data/Command pin
	rs gpio.PinIO  // Reset pin (optional)
	cs gpio.PinOut // Manual chip select (optional)

	// Display geometry
	rect       image.Rectangle
	xOff, yOff int
	maxTxSize  int

	// Scratch buffer sized to one full row (or column, whichever is
	// longer) at 16bpp. All fills and glyph renders stage their pixel
	// data here; it never grows.
	rowBuf []byte

	// Text state
	cursorX, cursorY int // offset-translated
	color            rgb565.Color
	bgColor          rgb565.Color

	halted bool
}

// NewSPI creates a new ST7735 device connected via SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an
// output.
//
// opts can be nil to use DefaultOpts (160x80 landscape).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	o.setDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}

	c, err := p.Connect(o.Speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7735: %w", err)
	}

	d := newDev(c, dc, &o)
	if err := d.init(&o); err != nil {
		return nil, err
	}
	return d, nil
}

// newDev assembles a Dev without touching the bus.
func newDev(c conn.Conn, dc gpio.PinOut, o *Opts) *Dev {
	// Large transfers are split to the connection's limit, 4096 bytes if it
	// does not report one.
	maxTx := 4096
	if lim, ok := c.(conn.Limits); ok {
		if n := lim.MaxTxSize(); n > 0 {
			maxTx = n
		}
	}
	return &Dev{
		c:         c,
		dc:        dc,
		rs:        o.RST,
		cs:        o.CS,
		rect:      image.Rect(0, 0, o.W, o.H),
		xOff:      o.XOffset,
		yOff:      o.YOffset,
		maxTxSize: maxTx,
		rowBuf:    make([]byte, max(o.W, o.H)*2),
		color:     rgb565.White,
		bgColor:   rgb565.Black,
	}
}

// init runs the power-on sequence. Every delay is mandated by the
// controller datasheet; skipping one risks a blank or corrupted panel.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset (if the RST pin is wired).
	if d.rs != nil {
		if err := d.rs.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7735: failed to pull RST low: %w", err)
		}
		time.Sleep(resetDelay)
		if err := d.rs.Out(gpio.High); err != nil {
			return fmt.Errorf("st7735: failed to pull RST high: %w", err)
		}
		time.Sleep(resetDelay)
	}

	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()

	// Out of sleep mode.
	if err := d.writeCommand(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(sleepOutDelay)

	// Scan orientation and RGB order.
	if err := d.writeCommand(cmdMADCTL); err != nil {
		return err
	}
	if err := d.writeData8(opts.Rotation.madctl()); err != nil {
		return err
	}

	// 16-bit pixel format.
	if err := d.writeCommand(cmdCOLMOD); err != nil {
		return err
	}
	if err := d.writeData8(colmod16bpp); err != nil {
		return err
	}

	// Gamma correction, both polarities.
	if err := d.writeCommand(cmdGMCTRP1); err != nil {
		return err
	}
	if err := d.sendData(gammaPositive); err != nil {
		return err
	}
	if err := d.writeCommand(cmdGMCTRN1); err != nil {
		return err
	}
	if err := d.sendData(gammaNegative); err != nil {
		return err
	}
	time.Sleep(modeDelay)

	// The 0.96" panel wants inverted polarity.
	if err := d.writeCommand(cmdINVON); err != nil {
		return err
	}

	if err := d.writeCommand(cmdNORON); err != nil {
		return err
	}
	time.Sleep(modeDelay)

	if err := d.writeCommand(cmdDISPON); err != nil {
		return err
	}
	time.Sleep(modeDelay)
	return nil
}

// startWrite asserts the manual chip select, if one is wired.
func (d *Dev) startWrite() error {
	if d.cs == nil {
		return nil
	}
	return d.cs.Out(gpio.Low)
}

// endWrite releases the manual chip select. Best effort: the panel has no
// acknowledgement path, so a failed deassert is indistinguishable from a
// wiring fault.
func (d *Dev) endWrite() {
	if d.cs != nil {
		d.cs.Out(gpio.High)
	}
}

// writeCommand sends a single command byte.
func (d *Dev) writeCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmd}, nil)
}

// writeData8 sends a single data byte.
func (d *Dev) writeData8(v byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx([]byte{v}, nil)
}

// writeData16 sends a 16-bit value, high byte first.
func (d *Dev) writeData16(v uint16) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx([]byte{byte(v >> 8), byte(v)}, nil)
}

// sendData streams a data block, split to the connection's transfer limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		chunk := data
		if len(chunk) > d.maxTxSize {
			chunk = chunk[:d.maxTxSize]
		}
		if err := d.c.Tx(chunk, nil); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// sendRepeated streams the same data block repeat times. This is how one
// scratch row services a fill of arbitrary height: the row is re-sent per
// repetition instead of being expanded in memory, the software analogue of
// a circular DMA channel re-reading its buffer.
func (d *Dev) sendRepeated(data []byte, repeat int) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for ; repeat > 0; repeat-- {
		rest := data
		for len(rest) > 0 {
			chunk := rest
			if len(chunk) > d.maxTxSize {
				chunk = chunk[:d.maxTxSize]
			}
			if err := d.c.Tx(chunk, nil); err != nil {
				return err
			}
			rest = rest[len(chunk):]
		}
	}
	return nil
}

// setWindow arms the inclusive rectangle (x0,y0)-(x1,y1), in panel memory
// coordinates, to accept a pixel stream. The trailing RAMWR leaves the bus
// in data mode; whatever is streamed next fills the window row-major.
func (d *Dev) setWindow(x0, y0, x1, y1 int) error {
	if err := d.writeCommand(cmdCASET); err != nil {
		return err
	}
	if err := d.writeData16(uint16(x0)); err != nil {
		return err
	}
	if err := d.writeData16(uint16(x1)); err != nil {
		return err
	}
	if err := d.writeCommand(cmdRASET); err != nil {
		return err
	}
	if err := d.writeData16(uint16(y0)); err != nil {
		return err
	}
	if err := d.writeData16(uint16(y1)); err != nil {
		return err
	}
	return d.writeCommand(cmdRAMWR)
}

// checkRect validates that a w x h rectangle at (x, y) lies within the
// display. The controller would silently wrap addresses otherwise.
func (d *Dev) checkRect(x, y, w, h int) error {
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > d.rect.Dx() || y+h > d.rect.Dy() {
		return fmt.Errorf("st7735: rectangle (%d,%d)+%dx%d outside %dx%d display",
			x, y, w, h, d.rect.Dx(), d.rect.Dy())
	}
	return nil
}

// fillRow stages n pixels of c in the scratch row buffer and returns the
// staged slice.
func (d *Dev) fillRow(n int, c rgb565.Color) []byte {
	row := d.rowBuf[:n*2]
	hi, lo := byte(c>>8), byte(c)
	for i := 0; i < len(row); i += 2 {
		row[i] = hi
		row[i+1] = lo
	}
	return row
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. The source image is converted to RGB565
// and streamed into the destination rectangle.
//
// Unlike the drawing primitives, Draw may allocate a conversion buffer for
// sources that are not already *rgb565.Image.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a pre-encoded image congruent with the destination
	// streams as-is.
	if img, ok := src.(*rgb565.Image); ok {
		if img.Rect == dst && sp == dst.Min && img.Stride == dst.Dx()*2 {
			return d.DrawBitmap(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), img.Pix)
		}
	}

	buf := rgb565.NewImage(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	draw.Draw(buf, buf.Rect, src, sp, draw.Src)
	return d.DrawBitmap(dst.Min.X, dst.Min.Y, dst.Dx(), dst.Dy(), buf.Pix)
}

var errHalted = errors.New("st7735: halted")

var _ display.Drawer = (*Dev)(nil)

// Invert switches display inversion on or off.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	return d.writeCommand(cmd)
}

// Halt blanks the display and puts the controller to sleep. After calling
// Halt the device does not respond to further commands until it is
// re-initialized.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.writeCommand(cmdDISPOFF); err != nil {
		return err
	}
	return d.writeCommand(cmdSLPIN)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
