package stereo

// DetectOcclusions performs the left/right consistency check. For each
// reference pixel x with disparity d1[x], the match is accepted
// only if the target pixel's own best disparity (d2, which stores -d and
// is negated back before the comparison) agrees with d1 within tolDisp. Rejected
// pixels are written as the sentinel dMin-1 in the returned map; d1/d2
// themselves are left untouched.
func DetectOcclusions(d1, d2 *Image, dMin int, tolDisp float64) *Image {
	w, h := d1.W, d1.H
	out, _ := NewImage(w, h, 1)
	sentinel := float32(dMin - 1)

	for y := 0; y < h; y++ {
		base := y * w
		for x := 0; x < w; x++ {
			dv := d1.Pix[base+x]
			d := int(dv)
			if float32(d) != dv || dv == sentinel {
				out.Pix[base+x] = sentinel
				continue
			}
			tx := x + d
			if tx < 0 || tx >= w {
				out.Pix[base+x] = sentinel
				continue
			}
			rv := d2.Pix[base+tx]
			if rv == sentinel {
				out.Pix[base+x] = sentinel
				continue
			}
			r := -int(rv) // d2 stores -d; negate it back to reference convention
			diff := float64(d - r)
			if diff < 0 {
				diff = -diff
			}
			if diff <= tolDisp {
				out.Pix[base+x] = dv
			} else {
				out.Pix[base+x] = sentinel
			}
		}
	}
	return out
}
