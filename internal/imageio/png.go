// Package imageio handles the boundary formats around the stereo matcher:
// PNG stereo-pair loading, 32-bit float TIFF persistence, and TIFF-to-PNG
// rendering. None of this is part of the matching core; it exists purely
// to get pixels in and disparities out.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/cwbudde/stereobw/internal/stereo"
)

// LoadRGB decodes a PNG (8-bit or 16-bit) and returns it as a 3-channel
// stereo.Image with values in [0,255], matching the float scale the
// matching core expects regardless of the source bit depth.
func LoadRGB(path string) (*stereo.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out, err := stereo.NewImage(w, h, 3)
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// RGBA() returns 16-bit-scaled, alpha-premultiplied values;
			// downscale to [0,255].
			out.Set(x, y, 0, float32(r>>8))
			out.Set(x, y, 1, float32(g>>8))
			out.Set(x, y, 2, float32(bl>>8))
		}
	}
	return out, nil
}

// SavePNG8 writes a 3-channel stereo.Image (values assumed in [0,255]) as
// an 8-bit PNG. Used by the weight-window visualizer.
func SavePNG8(path string, img *stereo.Image) error {
	if img.C != 3 {
		return fmt.Errorf("imageio: SavePNG8 requires 3 channels, got %d", img.C)
	}
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			r := clamp8(img.At(x, y, 0))
			g := clamp8(img.At(x, y, 1))
			b := clamp8(img.At(x, y, 2))
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

func clamp8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
