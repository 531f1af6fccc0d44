package stereo

import "math"

// CostParams are the truncated color+gradient cost weights used when
// building the per-disparity cost volume.
type CostParams struct {
	TauCol  float64
	TauGrad float64
	Alpha   float64
}

// BuildCostVolume produces one single-channel cost layer per disparity in
// [dMin, dMax]. Layer k holds C_d(x,y) for d = dMin+k.
//
// For pixels where x+d falls outside the image, both the color and
// gradient terms saturate at their truncation bound (tauCol, tauGrad) --
// this is the only place the cost volume depends on image width, so it is
// checked once per (x,y,d) rather than folded into the aggregator's inner
// loop.
func BuildCostVolume(img1, img2, grad1, grad2 *Image, dMin, dMax int, p CostParams) []*Image {
	w, h := img1.W, img1.H
	c := img1.C
	invC := 1.0 / float64(c)
	n := dMax - dMin + 1
	layers := make([]*Image, n)

	for k := 0; k < n; k++ {
		d := dMin + k
		layer, _ := NewImage(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				tx := x + d
				var colorCost, gradCost float64
				if tx < 0 || tx >= w {
					colorCost = p.TauCol
					gradCost = p.TauGrad
				} else {
					var l1 float64
					base1 := img1.Offset(x, y)
					base2 := img2.Offset(tx, y)
					for ch := 0; ch < c; ch++ {
						l1 += math.Abs(float64(img1.Pix[base1+ch]) - float64(img2.Pix[base2+ch]))
					}
					colorCost = math.Min(p.TauCol, l1*invC)
					gradCost = math.Min(p.TauGrad, math.Abs(float64(grad1.At(x, y, 0))-float64(grad2.At(tx, y, 0))))
				}
				cost := (1-p.Alpha)*colorCost + p.Alpha*gradCost
				layer.Set(x, y, 0, float32(cost))
			}
		}
		layers[k] = layer
	}
	return layers
}
