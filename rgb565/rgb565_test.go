package rgb565

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	for c := 0; c <= math.MaxUint16; c++ {
		want := Color(c)
		r, g, b := want.Components()
		if got := New(r, g, b); got != want {
			t.Errorf("%.4x => %.2x, %.2x, %.2x => %.4x", c, r, g, b, uint16(got))
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{0, 0, 0, Black},
		{255, 255, 255, White},
		{255, 0, 0, Red},
		{0, 255, 0, Green},
		{0, 0, 255, Blue},
		{255, 255, 0, Yellow},
		{255, 0, 255, Magenta},
		{0, 255, 255, Cyan},
		{0, 0, 123, Navy},
		{0, 125, 0, DarkGreen},
		{123, 0, 0, Maroon},
		{198, 195, 198, LightGrey},
		{123, 125, 123, DarkGrey},
		{255, 165, 0, Orange},
		{173, 255, 41, GreenYellow},
		{255, 130, 198, Pink},
	}
	for _, tt := range tests {
		if got := New(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("New(%d, %d, %d) = %.4x, want %.4x", tt.r, tt.g, tt.b, uint16(got), uint16(tt.want))
		}
	}
}

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		c          Color
		r, g, b, a uint32
	}{
		{Black, 0, 0, 0, 0xFFFF},
		{White, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{Red, 0xFFFF, 0, 0, 0xFFFF},
		{Green, 0, 0xFFFF, 0, 0xFFFF},
		{Blue, 0, 0, 0xFFFF, 0xFFFF},
	}
	for _, tt := range tests {
		r, g, b, a := tt.c.RGBA()
		if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
			t.Errorf("%.4x.RGBA() = %x, %x, %x, %x, want %x, %x, %x, %x",
				uint16(tt.c), r, g, b, a, tt.r, tt.g, tt.b, tt.a)
		}
	}
}

func TestModel(t *testing.T) {
	// Model is idempotent for Color values.
	if got := Model.Convert(Olive); got != Olive {
		t.Errorf("Convert(Olive) = %v", got)
	}
	// Standard colors truncate to the channel depths.
	if got := Model.Convert(color.RGBA{R: 255, G: 255, B: 255, A: 255}); got != White {
		t.Errorf("Convert(white RGBA) = %v, want White", got)
	}
	if got := Model.Convert(color.RGBA{R: 0xF8, G: 0xFC, B: 0xF8, A: 255}); got != White {
		t.Errorf("Convert(truncated white) = %v, want White", got)
	}
}

func TestImage(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 3))
	if img.Stride != 8 {
		t.Errorf("Stride = %d, want 8", img.Stride)
	}
	if len(img.Pix) != 4*3*2 {
		t.Errorf("len(Pix) = %d, want 24", len(img.Pix))
	}

	img.SetRGB565(1, 2, Orange)
	if got := img.RGB565At(1, 2); got != Orange {
		t.Errorf("RGB565At(1,2) = %.4x, want %.4x", uint16(got), uint16(Orange))
	}
	// Big-endian byte order, the order the panel consumes.
	i := img.PixOffset(1, 2)
	if img.Pix[i] != byte(Orange>>8) || img.Pix[i+1] != byte(Orange&0xFF) {
		t.Errorf("Pix[%d:] = %.2x %.2x, want high byte first", i, img.Pix[i], img.Pix[i+1])
	}

	// Set goes through the color model.
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	if got := img.RGB565At(0, 0); got != Red {
		t.Errorf("At(0,0) = %.4x, want Red", uint16(got))
	}

	// Out-of-bounds access is a no-op, matching the stdlib image types.
	img.SetRGB565(10, 10, White)
	if got := img.RGB565At(10, 10); got != 0 {
		t.Errorf("out-of-bounds At = %.4x, want 0", uint16(got))
	}
}
