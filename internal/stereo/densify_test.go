package stereo

import "testing"

// TestDensifyIdempotentOnUniformWindow checks that the weighted median is
// idempotent on a fully dense disparity map when every sample in a
// pixel's window already equals the center value.
func TestDensifyIdempotentOnUniformWindow(t *testing.T) {
	w, h := 9, 9
	filled, _ := NewImage(w, h, 1)
	for i := range filled.Pix {
		filled.Pix[i] = 2
	}
	ref, _ := NewImage(w, h, 3)
	for i := range ref.Pix {
		ref.Pix[i] = 128
	}
	pp := DefaultPostParams()
	dMin, dMax := -5, 5
	occ, _ := NewImage(w, h, 1)
	for i := range occ.Pix {
		occ.Pix[i] = float32(dMin - 1)
	}

	dense := Densify(filled, occ, ref, pp, dMin, dMax, false)
	for i := range dense.Pix {
		if dense.Pix[i] != 2 {
			t.Fatalf("densify of uniform disparity field changed pixel %d: got %v", i, dense.Pix[i])
		}
	}
}

// TestDensifyEmptyWindowPreservesFallback checks the boundary clause: if
// total weight is 0 (no valid samples), the original value is kept.
func TestDensifyEmptyWindowPreservesFallback(t *testing.T) {
	w, h := 3, 3
	filled, _ := NewImage(w, h, 1)
	dMin, dMax := 0, 0
	// every sample is out of [dMin,dMax], so no sample in any window is
	// ever valid and every pixel should fall back to its own value.
	for i := range filled.Pix {
		filled.Pix[i] = 99
	}
	ref, _ := NewImage(w, h, 3)
	pp := DefaultPostParams()
	pp.MedianRadius = 1
	occ, _ := NewImage(w, h, 1)
	for i := range occ.Pix {
		occ.Pix[i] = float32(dMin - 1)
	}

	dense := Densify(filled, occ, ref, pp, dMin, dMax, false)
	for i := range dense.Pix {
		if dense.Pix[i] != 99 {
			t.Fatalf("empty-window fallback changed pixel %d: got %v, want 99", i, dense.Pix[i])
		}
	}
}

// TestDensifyMedianPicksMajorityDisparity checks that the weighted median
// favors the more frequent (and more centrally weighted) disparity value.
func TestDensifyMedianPicksMajorityDisparity(t *testing.T) {
	w, h := 5, 5
	filled, _ := NewImage(w, h, 1)
	for i := range filled.Pix {
		filled.Pix[i] = 1
	}
	// a minority of far-corner samples disagrees with the majority value
	filled.Set(0, 0, 0, -2)
	filled.Set(4, 0, 0, -2)
	filled.Set(0, 4, 0, -2)
	filled.Set(4, 4, 0, -2)
	filled.Set(2, 2, 0, 1) // center stays at the majority value
	ref, _ := NewImage(w, h, 3)
	for i := range ref.Pix {
		ref.Pix[i] = 200
	}
	pp := DefaultPostParams()
	pp.MedianRadius = 2
	dMin, dMax := -3, 3
	occ, _ := NewImage(w, h, 1)
	for i := range occ.Pix {
		occ.Pix[i] = float32(dMin - 1)
	}

	dense := Densify(filled, occ, ref, pp, dMin, dMax, false)
	if got := dense.At(2, 2, 0); got != 1 {
		t.Fatalf("median of majority-1 neighborhood = %v, want 1", got)
	}
}

// TestDensifyLeavesNonOccludedPixelsUnchanged verifies that, with
// fullSmoothing off, a pixel the occlusion map marks as valid is passed
// through from filled untouched even when its neighborhood's weighted
// median would disagree with it.
func TestDensifyLeavesNonOccludedPixelsUnchanged(t *testing.T) {
	w, h := 5, 5
	dMin, dMax := -3, 3
	filled, _ := NewImage(w, h, 1)
	for i := range filled.Pix {
		filled.Pix[i] = 2
	}
	filled.Set(2, 2, 0, -3) // strongly disagrees with its neighborhood

	occ, _ := NewImage(w, h, 1)
	for i := range occ.Pix {
		occ.Pix[i] = float32(dMin - 1) // occluded everywhere...
	}
	occ.Set(2, 2, 0, -3) // ...except the center, which is a confident match

	ref, _ := NewImage(w, h, 3)
	for i := range ref.Pix {
		ref.Pix[i] = 128
	}
	pp := DefaultPostParams()
	pp.MedianRadius = 2

	dense := Densify(filled, occ, ref, pp, dMin, dMax, false)
	if got := dense.At(2, 2, 0); got != -3 {
		t.Fatalf("occluded-only densify changed a non-occluded pixel: got %v, want -3", got)
	}
	// a neighboring occluded pixel should still pick up the dominant
	// value from its window.
	if got := dense.At(0, 0, 0); got != 2 {
		t.Fatalf("occluded pixel not densified: got %v, want 2", got)
	}
}

// TestDensifyFullSmoothingIgnoresOcclusion verifies that fullSmoothing=true
// recomputes every pixel regardless of its occlusion status.
func TestDensifyFullSmoothingIgnoresOcclusion(t *testing.T) {
	w, h := 5, 5
	dMin, dMax := -3, 3
	filled, _ := NewImage(w, h, 1)
	for i := range filled.Pix {
		filled.Pix[i] = 2
	}
	filled.Set(2, 2, 0, -3)

	occ, _ := NewImage(w, h, 1)
	for i := range occ.Pix {
		occ.Pix[i] = float32(dMin - 1)
	}
	occ.Set(2, 2, 0, -3) // marked non-occluded, but fullSmoothing overrides it

	ref, _ := NewImage(w, h, 3)
	for i := range ref.Pix {
		ref.Pix[i] = 128
	}
	pp := DefaultPostParams()
	pp.MedianRadius = 2

	dense := Densify(filled, occ, ref, pp, dMin, dMax, true)
	if got := dense.At(2, 2, 0); got != 2 {
		t.Fatalf("fullSmoothing left a pixel at its outlier value: got %v, want 2", got)
	}
}
