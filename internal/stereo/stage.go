package stereo

import "math"

// Stage prepares a disparity map for persistence. This does not clamp to
// the nearest bound: any value outside [dMin, dMax] (including the
// fill/occlusion sentinels) is replaced with NaN so downstream consumers
// can distinguish "no disparity here" from a legitimate boundary
// disparity.
func Stage(d *Image, dMin, dMax int) *Image {
	out, _ := NewImage(d.W, d.H, 1)
	nan := float32(math.NaN())
	lo, hi := float32(dMin), float32(dMax)
	for i, v := range d.Pix {
		if v < lo || v > hi {
			out.Pix[i] = nan
		} else {
			out.Pix[i] = v
		}
	}
	return out
}
