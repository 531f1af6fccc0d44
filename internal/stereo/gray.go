package stereo

// lumaWeights are the standard ITU-R BT.601 luma coefficients. Inputs are
// assumed to already be in [0,255], and luma preserves that scale.
var lumaWeights = []float32{0.299, 0.587, 0.114}

// Luma converts a color image to single-channel grayscale using the
// standard luma weights. A single-channel input is returned unchanged
// (deep-copied).
func Luma(img *Image) (*Image, error) {
	if img.C == 1 {
		return img.Clone(), nil
	}
	return img.ToGray(lumaWeights)
}

// Gradient computes the horizontal finite-difference gradient of a
// single-channel image: the central difference at interior columns, and
// the one-sided forward/backward difference at the left/right edges.
// Sign is preserved; magnitude is taken later by the cost volume builder.
func Gradient(gray *Image) *Image {
	out, _ := NewImage(gray.W, gray.H, 1)
	w, h := gray.W, gray.H
	for y := 0; y < h; y++ {
		if w == 1 {
			out.Set(0, y, 0, 0)
			continue
		}
		out.Set(0, y, 0, gray.At(1, y, 0)-gray.At(0, y, 0))
		for x := 1; x < w-1; x++ {
			out.Set(x, y, 0, 0.5*(gray.At(x+1, y, 0)-gray.At(x-1, y, 0)))
		}
		out.Set(w-1, y, 0, gray.At(w-1, y, 0)-gray.At(w-2, y, 0))
	}
	return out
}
