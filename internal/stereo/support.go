package stereo

import "math"

// Support is a (2r+1)x(2r+1) bilateral weight window around a center
// pixel. Its backing buffer is reused across BuildSupport calls so the
// aggregator's ring of target windows doesn't reallocate per pixel.
type Support struct {
	w    []float64
	r    int
	side int
}

// newSupport allocates a Support buffer for the given radius.
func newSupport(r int) *Support {
	side := 2*r + 1
	return &Support{w: make([]float64, side*side), r: r, side: side}
}

// NewSupportWindow is the exported form of newSupport, for callers outside
// the package (the weight-window visualizer) that need a scratch buffer to
// pass to BuildSupport.
func NewSupportWindow(r int) *Support {
	return newSupport(r)
}

// At returns the weight at offset (dx,dy) from the window's center.
func (s *Support) At(dx, dy int) float64 {
	return s.w[(dy+s.r)*s.side+(dx+s.r)]
}

// BuildSupport fills dst with the bilateral support window for center
// (x0,y0) in img. Entries whose (x0+dx, y0+dy) fall outside img are left
// at zero -- the aggregator's den==0 guard naturally discards their
// contribution.
func BuildSupport(img *Image, x0, y0, r int, tables *Tables, dst *Support) {
	side := 2*r + 1
	if len(dst.w) != side*side {
		dst.w = make([]float64, side*side)
	}
	dst.r = r
	dst.side = side

	c := img.C
	var center [3]float32
	centerInBounds := img.InBounds(x0, y0)
	if centerInBounds {
		base := img.Offset(x0, y0)
		for ch := 0; ch < c; ch++ {
			center[ch] = img.Pix[base+ch]
		}
	}

	for dy := -r; dy <= r; dy++ {
		py := y0 + dy
		for dx := -r; dx <= r; dx++ {
			px := x0 + dx
			idx := (dy+r)*side + (dx + r)
			if !centerInBounds || px < 0 || px >= img.W || py < 0 || py >= img.H {
				dst.w[idx] = 0
				continue
			}
			var l1 float64
			base := img.Offset(px, py)
			for ch := 0; ch < c; ch++ {
				l1 += math.Abs(float64(img.Pix[base+ch]) - float64(center[ch]))
			}
			ci := colorIndex(l1)
			if ci >= len(tables.DistC) {
				ci = len(tables.DistC) - 1
			}
			dst.w[idx] = tables.DistC[ci] * tables.DistP[idx]
		}
	}
}
