package stereo

import "math"

// PostParams are the occlusion/densification parameters: tolDisp for the
// left/right consistency check, and the bilateral-median window
// parameters for densification.
type PostParams struct {
	TolDisp      float64
	MedianRadius int
	SigmaColor   float64
	SigmaSpace   float64
}

// Densify fills the occluded pixels of a disparity map with the
// bilateral-weighted median of the finite, in-range disparities in their
// window, guided by the reference image. occ is the pre-fill occlusion
// map: a pixel counts as occluded when occ's value equals the unset
// sentinel dMin-1. Non-occluded pixels are passed through from filled
// unchanged unless fullSmoothing is set, in which case every pixel is
// recomputed regardless of occlusion status.
//
// The window here uses its own Gaussian spatial kernel and
// sigmaColor-scaled range kernel rather than the matching stage's
// distC/distP tables -- the two stages have independent parameter sets
// (radius/gammaCol/gammaPos vs. medianRadius/sigmaColor/sigmaSpace) and
// are not interchangeable.
func Densify(filled, occ, ref *Image, p PostParams, dMin, dMax int, fullSmoothing bool) *Image {
	w, h := filled.W, filled.H
	r := p.MedianRadius
	c := ref.C
	invC := 1.0 / float64(c)
	twoSigmaSpace2 := 2 * p.SigmaSpace * p.SigmaSpace
	unset := float32(dMin - 1)

	nBins := dMax - dMin + 1
	out, _ := NewImage(w, h, 1)
	hist := make([]float64, nBins)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := filled.At(x, y, 0)

			if !fullSmoothing && occ.At(x, y, 0) != unset {
				out.Set(x, y, 0, center)
				continue
			}

			var cbase int
			cInBounds := ref.InBounds(x, y)
			if cInBounds {
				cbase = ref.Offset(x, y)
			}

			for i := range hist {
				hist[i] = 0
			}
			var total float64

			for dy := -r; dy <= r; dy++ {
				py := y + dy
				if py < 0 || py >= h {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					px := x + dx
					if px < 0 || px >= w {
						continue
					}
					v := filled.At(px, py, 0)
					d := int(v)
					if float32(d) != v || d < dMin || d > dMax {
						continue
					}
					if !cInBounds || !ref.InBounds(px, py) {
						continue
					}

					spatial := math.Exp(-float64(dx*dx+dy*dy) / twoSigmaSpace2)

					var l1 float64
					pbase := ref.Offset(px, py)
					for ch := 0; ch < c; ch++ {
						l1 += math.Abs(float64(ref.Pix[pbase+ch]) - float64(ref.Pix[cbase+ch]))
					}
					rangeW := math.Exp(-l1 * invC / p.SigmaColor)

					wgt := spatial * rangeW
					if wgt == 0 {
						continue
					}
					hist[d-dMin] += wgt
					total += wgt
				}
			}

			if total == 0 {
				out.Set(x, y, 0, center)
				continue
			}

			half := total / 2
			var acc float64
			median := dMin
			for b := 0; b < nBins; b++ {
				acc += hist[b]
				if acc >= half {
					median = b + dMin
					break
				}
			}
			out.Set(x, y, 0, float32(median))
		}
	}
	return out
}
