package stereo

import (
	"context"
	"fmt"
	"log/slog"
)

// Result holds the three staged outputs of a match run: the raw
// winner-take-all disparity map, the occlusion-masked map, and the final
// densified map. All three are single-channel images with NaN standing in
// for "no disparity".
type Result struct {
	Initial *Image
	Occ     *Image
	Dense   *Image
}

// Run executes the full matching and post-processing pipeline against a
// rectified color (or gray) stereo pair. img1 is the reference view, img2
// the target view; both must share dimensions and channel count.
//
// fullSmoothing controls the densifier's scope: false (the default for
// callers that don't need it) refills only pixels the occlusion filter
// flagged, leaving every confident match untouched; true recomputes the
// weighted median everywhere, which is a coarser, much blurrier result and
// should be treated as an explicit opt-in rather than the common case.
func Run(ctx context.Context, img1, img2 *Image, dMin, dMax int, mp MatchParams, pp PostParams, sense int, fullSmoothing bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img1.W != img2.W || img1.H != img2.H || img1.C != img2.C {
		return nil, fmt.Errorf("stereo: image pair size mismatch: %dx%dx%d vs %dx%dx%d",
			img1.W, img1.H, img1.C, img2.W, img2.H, img2.C)
	}
	if dMin > dMax {
		return nil, fmt.Errorf("stereo: %w: dMin=%d dMax=%d", ErrDisparityRange, dMin, dMax)
	}
	if err := mp.Validate(); err != nil {
		return nil, fmt.Errorf("stereo: invalid match params: %w", err)
	}
	if err := pp.Validate(); err != nil {
		return nil, fmt.Errorf("stereo: invalid post params: %w", err)
	}
	if err := ValidateSense(sense); err != nil {
		return nil, fmt.Errorf("stereo: %w", err)
	}

	slog.Info("stereo: starting match", "width", img1.W, "height", img1.H,
		"dMin", dMin, "dMax", dMax, "radius", mp.Radius, "comb", mp.Comb)

	gray1, err := Luma(img1)
	if err != nil {
		return nil, fmt.Errorf("stereo: luma: %w", err)
	}
	gray2, err := Luma(img2)
	if err != nil {
		return nil, fmt.Errorf("stereo: luma: %w", err)
	}
	grad1 := Gradient(gray1)
	grad2 := Gradient(gray2)

	tables := BuildTables(img1.C, mp.GammaCol, mp.GammaPos, mp.Radius, 1)

	slog.Debug("stereo: building cost volume", "layers", dMax-dMin+1)
	costVolume := BuildCostVolume(img1, img2, grad1, grad2, dMin, dMax,
		CostParams{TauCol: mp.TauCol, TauGrad: mp.TauGrad, Alpha: mp.Alpha})

	agg := NewAggregator(img1, img2, costVolume, tables, mp.Radius, dMin, dMax, mp.Comb)
	d1, d2 := agg.Run()
	slog.Debug("stereo: aggregation complete")

	occ := DetectOcclusions(d1, d2, dMin, pp.TolDisp)
	filled := Fill(occ, dMin, sense)
	dense := Densify(filled, occ, img1, pp, dMin, dMax, fullSmoothing)

	slog.Info("stereo: match complete")

	return &Result{
		Initial: Stage(d1, dMin, dMax),
		Occ:     Stage(occ, dMin, dMax),
		Dense:   Stage(dense, dMin, dMax),
	}, nil
}
