package stereo

import "testing"

// TestBuildCostVolumeOutOfBoundsSaturates checks P4's second clause: cost
// equals the upper bound whenever x+d is outside the image.
func TestBuildCostVolumeOutOfBoundsSaturates(t *testing.T) {
	img1, _ := NewImage(4, 2, 1)
	img2, _ := NewImage(4, 2, 1)
	grad1 := Gradient(img1)
	grad2 := Gradient(img2)
	p := CostParams{TauCol: 30, TauGrad: 2, Alpha: 0.9}

	layers := BuildCostVolume(img1, img2, grad1, grad2, 5, 5, p)
	want := float32((1-p.Alpha)*p.TauCol + p.Alpha*p.TauGrad)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got := layers[0].At(x, y, 0); got != want {
				t.Fatalf("cost(%d,%d) = %v, want upper bound %v", x, y, got, want)
			}
		}
	}
}

// TestBuildCostVolumeIdenticalImagesAreZero checks the identical-pair case
// (S4-style): zero color and gradient difference gives zero cost wherever
// x+d is in range.
func TestBuildCostVolumeIdenticalImagesAreZero(t *testing.T) {
	img, _ := NewImage(4, 2, 1)
	for i := range img.Pix {
		img.Pix[i] = float32(i)
	}
	grad := Gradient(img)
	p := CostParams{TauCol: 30, TauGrad: 2, Alpha: 0.9}

	layers := BuildCostVolume(img, img, grad, grad, 0, 0, p)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got := layers[0].At(x, y, 0); got != 0 {
				t.Fatalf("cost(%d,%d) = %v, want 0", x, y, got)
			}
		}
	}
}

// TestBuildCostVolumeBoundedRange checks P4's first clause.
func TestBuildCostVolumeBoundedRange(t *testing.T) {
	img1, _ := NewImage(6, 3, 3)
	img2, _ := NewImage(6, 3, 3)
	for i := range img1.Pix {
		img1.Pix[i] = float32((i * 37) % 255)
		img2.Pix[i] = float32((i * 53) % 255)
	}
	grad1 := Gradient(mustGray(img1))
	grad2 := Gradient(mustGray(img2))
	p := CostParams{TauCol: 30, TauGrad: 2, Alpha: 0.9}

	layers := BuildCostVolume(img1, img2, grad1, grad2, -2, 2, p)
	upper := float32((1-p.Alpha)*p.TauCol + p.Alpha*p.TauGrad)
	for _, layer := range layers {
		for _, v := range layer.Pix {
			if v < 0 || v > upper {
				t.Fatalf("cost %v out of bounds [0, %v]", v, upper)
			}
		}
	}
}

func mustGray(img *Image) *Image {
	g, err := Luma(img)
	if err != nil {
		panic(err)
	}
	return g
}
