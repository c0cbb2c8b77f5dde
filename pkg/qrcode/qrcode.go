// Package qrcode renders the entry passes participants present at the door.
package qrcode

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type Config struct {
	Content       string
	LogoPath      string  // optional logo drawn over the code center
	Size          int     // output side length in pixels
	LogoScale     float64 // logo side relative to Size
	Background    color.Color
	Foreground    color.Color
	RecoveryLevel int
}

// DefaultConfig leaves enough error-correction headroom for the logo overlay.
func DefaultConfig() Config {
	return Config{
		Size:          512,
		LogoScale:     0.2,
		Background:    color.White,
		Foreground:    color.Black,
		RecoveryLevel: int(qrcode.High),
	}
}

// Generate renders the QR code as a PNG.
func (c *Config) Generate() ([]byte, error) {
	qr, err := qrcode.New(c.Content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	qr.BackgroundColor = toRGBA(c.Background, color.White)
	qr.ForegroundColor = toRGBA(c.Foreground, color.Black)

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(qr.BackgroundColor)
	dc.Clear()
	dc.DrawImage(qr.Image(c.Size), 0, 0)

	if c.LogoPath != "" {
		logo, err := gg.LoadImage(c.LogoPath)
		if err != nil {
			return nil, err
		}
		logoSize := uint(float64(c.Size) * c.LogoScale)
		logo = resize.Resize(logoSize, logoSize, logo, resize.Lanczos3)

		center := float64(c.Size) / 2
		// Clear a disc behind the logo so it stays readable.
		dc.SetColor(qr.BackgroundColor)
		dc.DrawCircle(center, center, float64(logoSize)/2*1.15)
		dc.Fill()
		dc.DrawImageAnchored(logo, c.Size/2, c.Size/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRGBA(c color.Color, fallback color.Color) color.RGBA {
	if c == nil {
		c = fallback
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
