package st7735

import (
	"strconv"

	"github.com/limingjie/CH32V003-ST7735-Driver/rgb565"
)

// SetCursor moves the text insertion point to (x, y), in display
// coordinates. The cursor is stored offset-translated and persists across
// calls; text printing advances it.
func (d *Dev) SetCursor(x, y int) {
	d.cursorX = x + d.xOff
	d.cursorY = y + d.yOff
}

// SetColor sets the text foreground color.
func (d *Dev) SetColor(c rgb565.Color) {
	d.color = c
}

// SetBackgroundColor sets the text background color.
func (d *Dev) SetBackgroundColor(c rgb565.Color) {
	d.bgColor = c
}

// PrintChar renders one 5x7 glyph at the cursor. The cursor is not
// advanced; Print takes care of that.
//
// Characters outside the ASCII range 0x20-0x7E render as a blank
// background-colored cell.
func (d *Dev) PrintChar(c byte) error {
	if d.halted {
		return errHalted
	}
	glyph := glyph5x7(c)

	// Rasterize the column-encoded glyph row-major into the scratch
	// buffer: 5x7 pixels, two bytes each.
	buf := d.rowBuf[:0]
	for row := 0; row < fontHeight; row++ {
		for col := 0; col < fontWidth; col++ {
			px := d.bgColor
			if glyph[col]&(1<<row) != 0 {
				px = d.color
			}
			buf = append(buf, byte(px>>8), byte(px))
		}
	}

	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(d.cursorX, d.cursorY, d.cursorX+fontWidth-1, d.cursorY+fontHeight-1); err != nil {
		return err
	}
	return d.sendRepeated(buf, 1)
}

// Print renders a string at the cursor, advancing it by the glyph width
// plus one column of spacing per character. There is no wrapping or
// newline handling; text running past the panel edge is clipped by the
// controller's address wrapping.
func (d *Dev) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.PrintChar(s[i]); err != nil {
			return err
		}
		d.cursorX += fontWidth + 1
	}
	return nil
}

// PrintNumber renders num in decimal at the cursor. width is a minimum
// field width in pixels: when the rendered number is narrower, the cursor
// is advanced first so the number ends up right-aligned within the field.
// A wider number is never truncated.
func (d *Dev) PrintNumber(num int32, width int) error {
	var scratch [12]byte // sign + 10 digits
	s := strconv.AppendInt(scratch[:0], int64(num), 10)

	numWidth := len(s)*(fontWidth+1) - 1
	if width > numWidth {
		d.cursorX += width - numWidth
	}
	return d.Print(string(s))
}
