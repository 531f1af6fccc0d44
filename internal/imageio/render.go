package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/cwbudde/stereobw/internal/stereo"
)

// RenderParams are the affine mapping bounds: [vMin,vMax] in the
// disparity domain map to [grayMin,grayMax] in the 8-bit output domain.
type RenderParams struct {
	VMin, VMax       float64
	GrayMin, GrayMax float64
}

// RenderDisparityPNG maps a single-channel float disparity image to an
// 8-bit grayscale PNG via the affine gray = a*value + b transform. NaN or
// out-of-[vMin,vMax] pixels render as cyan (R=0, G=255, B=255).
func RenderDisparityPNG(path string, img *stereo.Image, p RenderParams) error {
	if img.C != 1 {
		return fmt.Errorf("imageio: RenderDisparityPNG requires 1 channel, got %d", img.C)
	}
	span := p.VMax - p.VMin
	if span == 0 {
		return fmt.Errorf("imageio: RenderDisparityPNG: vMin equals vMax")
	}
	a := (p.GrayMax - p.GrayMin) / span
	b := (p.GrayMin*p.VMax - p.GrayMax*p.VMin) / span

	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			v := float64(img.At(x, y, 0))
			if math.IsNaN(v) || v < p.VMin || v > p.VMax {
				out.SetNRGBA(x, y, color.NRGBA{R: 0, G: 255, B: 255, A: 255})
				continue
			}
			gray := clamp8f(a*v + b)
			out.SetNRGBA(x, y, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
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

func clamp8f(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
