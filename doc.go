// Package st7735 controls a ST7735 TFT LCD panel via SPI.
//
// The ST7735 is a single-chip controller for 16-bit color TFT panels of up
// to 162×132 pixels. This driver targets the common 0.96" 160×80 module and
// implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit RGB565 color, transmitted high byte first
// - Immediate mode: the panel memory is the only pixel store, there is no
// host-side framebuffer
// - Windowed addressing: every operation opens a rectangular window and
// streams pixels into it row-major
// - Solid fills re-send one scratch row per display row instead of
// expanding the fill in memory
//
// # Hardware Connection
//
// Connect the panel to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VDD         → 3.3V
//	SCL         → SPI Clock (SCLK)
//	SDA         → SPI Data (MOSI)
//	RS/DC       → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RESET       → Optional: GPIO for hardware reset
//	LEDA        → 3.3V (backlight; use PWM to control brightness)
//
// The bus is write-only: the driver never reads from the panel, and the
// panel never acknowledges. Wiring faults show up as a blank or corrupted
// display, not as errors.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		st7735 "github.com/limingjie/CH32V003-ST7735-Driver"
//		"github.com/limingjie/CH32V003-ST7735-Driver/rgb565"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		spiBus, _ := spireg.Open("")
//		dcPin := gpioreg.ByName("GPIO25")
//
//		dev, err := st7735.NewSPI(spiBus, dcPin, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		dev.FillRect(0, 0, 160, 80, rgb565.Black)
//		dev.DrawLine(0, 0, 159, 79, rgb565.Yellow)
//
//		dev.SetCursor(10, 10)
//		dev.SetColor(rgb565.Red)
//		dev.Print("Hello!")
//	}
//
// # Orientation and Offsets
//
// The panel's visible area does not start at controller memory address
// zero. The driver adds a fixed per-wiring offset, chosen at construction
// time together with the rotation, to every public coordinate:
//
//	dev, _ := st7735.NewSPI(spiBus, dcPin, &st7735.Opts{
//		Rotation: st7735.Portrait, // 80x160, offsets swapped
//	})
//
// Rotation is one of four MADCTL scan presets and cannot be changed after
// construction.
//
// # Text
//
// Text rendering uses a built-in 5×7 bitmap font covering printable ASCII.
// The cursor advances by six columns per character; there is no wrapping.
// PrintNumber right-aligns within a minimum field width given in pixels:
//
//	dev.SetCursor(0, 40)
//	dev.PrintNumber(-1234, 60)
//
// # Bitmaps
//
// DrawBitmap streams caller-encoded RGB565 pixels directly. The rgb565
// subpackage provides an image.Image implementation with a compatible
// pixel layout, and Dev implements display.Drawer for use with standard
// image sources:
//
//	img := rgb565.NewImage(dev.Bounds())
//	// ... draw into img ...
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Concurrency
//
// The driver is strictly single-caller: the scratch buffer, cursor and
// colors are unsynchronized state, and chip-select is held only for the
// duration of one logical operation. Serialize access externally if more
// than one goroutine draws.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/ST7735.pdf
package st7735
