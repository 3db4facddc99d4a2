package st7735

import (
	"fmt"

	"github.com/limingjie/CH32V003-ST7735-Driver/rgb565"
)

// DrawPixel sets a single pixel.
func (d *Dev) DrawPixel(x, y int, c rgb565.Color) error {
	if d.halted {
		return errHalted
	}
	if err := d.checkRect(x, y, 1, 1); err != nil {
		return err
	}
	x += d.xOff
	y += d.yOff
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(x, y, x, y); err != nil {
		return err
	}
	return d.writeData16(uint16(c))
}

// FillRect fills a w x h rectangle at (x, y) with a solid color.
//
// One row of pixels is staged in the scratch buffer and re-sent h times,
// so the cost is O(w) buffer work regardless of height.
func (d *Dev) FillRect(x, y, w, h int, c rgb565.Color) error {
	if d.halted {
		return errHalted
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	x += d.xOff
	y += d.yOff
	row := d.fillRow(w, c)
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return d.sendRepeated(row, h)
}

// drawFastHLine draws a w pixel wide horizontal line starting at (x, y).
// Coordinates are pre-validated and not yet offset-translated.
func (d *Dev) drawFastHLine(x, y, w int, c rgb565.Color) error {
	x += d.xOff
	y += d.yOff
	row := d.fillRow(w, c)
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(x, y, x+w-1, y); err != nil {
		return err
	}
	return d.sendRepeated(row, 1)
}

// drawFastVLine draws a h pixel tall vertical line starting at (x, y).
// Coordinates are pre-validated and not yet offset-translated.
func (d *Dev) drawFastVLine(x, y, h int, c rgb565.Color) error {
	x += d.xOff
	y += d.yOff
	col := d.fillRow(h, c)
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(x, y, x, y+h-1); err != nil {
		return err
	}
	return d.sendRepeated(col, 1)
}

// DrawRect draws the one pixel thick outline of a w x h rectangle at (x, y).
func (d *Dev) DrawRect(x, y, w, h int, c rgb565.Color) error {
	if d.halted {
		return errHalted
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	if err := d.drawFastHLine(x, y, w, c); err != nil {
		return err
	}
	if err := d.drawFastHLine(x, y+h-1, w, c); err != nil {
		return err
	}
	if err := d.drawFastVLine(x, y, h, c); err != nil {
		return err
	}
	return d.drawFastVLine(x+w-1, y, h, c)
}

// DrawLine draws a one pixel thick line from (x0,y0) to (x1,y1).
//
// Horizontal and vertical segments are streamed as a single block; anything
// diagonal falls back to Bresenham with one transfer per pixel, which makes
// it the slowest primitive by far.
func (d *Dev) DrawLine(x0, y0, x1, y1 int, c rgb565.Color) error {
	if d.halted {
		return errHalted
	}
	if err := d.checkRect(min(x0, x1), min(y0, y1), absDiff(x0, x1)+1, absDiff(y0, y1)+1); err != nil {
		return err
	}
	switch {
	case x0 == x1:
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		return d.drawFastVLine(x0, y0, y1-y0+1, c)
	case y0 == y1:
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		return d.drawFastHLine(x0, y0, x1-x0+1, c)
	default:
		return d.drawLineBresenham(x0, y0, x1, y1, c)
	}
}

// drawLineBresenham rasterizes a diagonal segment with the integer
// Bresenham algorithm: transpose when steeper than 45°, normalize to
// left-to-right, then step the major axis one pixel at a time, advancing
// the minor axis when the error accumulator underflows.
func (d *Dev) drawLineBresenham(x0, y0, x1, y1 int, c rgb565.Color) error {
	steep := absDiff(y1, y0) > absDiff(x1, x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := absDiff(y1, y0)
	err := dx >> 1
	step := 1
	if y0 > y1 {
		step = -1
	}

	for ; x0 <= x1; x0++ {
		var drawErr error
		if steep {
			drawErr = d.DrawPixel(y0, x0, c)
		} else {
			drawErr = d.DrawPixel(x0, y0, c)
		}
		if drawErr != nil {
			return drawErr
		}
		err -= dy
		if err < 0 {
			err += dx
			y0 += step
		}
	}
	return nil
}

// DrawBitmap streams a caller-supplied block of pre-encoded pixels into a
// w x h window at (x, y). pix holds w*h RGB565 values, two bytes each, high
// byte first, row-major; the Pix buffer of a rgb565.Image has exactly this
// layout. The scratch row buffer is bypassed.
func (d *Dev) DrawBitmap(x, y, w, h int, pix []byte) error {
	if d.halted {
		return errHalted
	}
	if err := d.checkRect(x, y, w, h); err != nil {
		return err
	}
	if len(pix) != w*h*2 {
		return fmt.Errorf("st7735: bitmap is %d bytes, want %d for %dx%d", len(pix), w*h*2, w, h)
	}
	x += d.xOff
	y += d.yOff
	if err := d.startWrite(); err != nil {
		return err
	}
	defer d.endWrite()
	if err := d.setWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return d.sendRepeated(pix, 1)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
