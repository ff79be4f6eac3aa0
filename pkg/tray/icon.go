package tray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 64

var (
	iconBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	iconForeground = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
)

// drawIcon renders a blue ring on a dark rounded square.
func drawIcon(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	c := float64(size-1) / 2
	outer := float64(size) * 0.40
	inner := float64(size) * 0.26
	corner := float64(size) * 0.18

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x), float64(y)
			if !insideRoundedSquare(fx, fy, float64(size), corner) {
				continue
			}
			d2 := (fx-c)*(fx-c) + (fy-c)*(fy-c)
			if d2 <= outer*outer && d2 >= inner*inner {
				img.SetRGBA(x, y, iconForeground)
			} else {
				img.SetRGBA(x, y, iconBackground)
			}
		}
	}
	return img
}

func insideRoundedSquare(x, y, size, r float64) bool {
	cx := clamp(x, r, size-1-r)
	cy := clamp(y, r, size-1-r)
	return (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IconPNG returns the tray icon encoded as PNG.
func IconPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, drawIcon(iconSize)); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapICO places a PNG image in a single-entry ICO container.
func wrapICO(pngData []byte, size int) []byte {
	dim := byte(size)
	if size >= 256 {
		dim = 0
	}

	var buf bytes.Buffer
	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{dim, dim, 0, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // planes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(pngData)
	return buf.Bytes()
}
