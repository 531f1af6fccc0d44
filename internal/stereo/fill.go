package stereo

// Fill applies a monotone hole-filling pass to an occlusion-masked
// disparity map. For each row, invalid pixels (sentinel dMin-1) are
// replaced by extending the nearest valid neighbor on each side; where a
// gap is bounded by valid pixels on both sides, the two candidates are
// combined by max (sense=0, fillMaxX) or min (sense=1, fillMinX). A row
// with no valid pixels at all is filled with dMin, a distinct sentinel
// from the unset value dMin-1.
func Fill(occ *Image, dMin int, sense int) *Image {
	w, h := occ.W, occ.H
	unset := float32(dMin - 1)
	allInvalid := float32(dMin)

	out, _ := NewImage(w, h, 1)

	left := make([]float32, w)
	right := make([]float32, w)
	leftValid := make([]bool, w)
	rightValid := make([]bool, w)

	for y := 0; y < h; y++ {
		base := y * w
		var cur float32
		has := false
		for x := 0; x < w; x++ {
			v := occ.Pix[base+x]
			if v != unset {
				cur = v
				has = true
			}
			left[x] = cur
			leftValid[x] = has
		}

		has = false
		for x := w - 1; x >= 0; x-- {
			v := occ.Pix[base+x]
			if v != unset {
				cur = v
				has = true
			}
			right[x] = cur
			rightValid[x] = has
		}

		for x := 0; x < w; x++ {
			orig := occ.Pix[base+x]
			if orig != unset {
				out.Pix[base+x] = orig
				continue
			}
			lv, lok := left[x], leftValid[x]
			rv, rok := right[x], rightValid[x]
			switch {
			case lok && rok:
				if sense == 1 {
					if lv < rv {
						out.Pix[base+x] = lv
					} else {
						out.Pix[base+x] = rv
					}
				} else {
					if lv > rv {
						out.Pix[base+x] = lv
					} else {
						out.Pix[base+x] = rv
					}
				}
			case lok:
				out.Pix[base+x] = lv
			case rok:
				out.Pix[base+x] = rv
			default:
				out.Pix[base+x] = allInvalid
			}
		}
	}
	return out
}
