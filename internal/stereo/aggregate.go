package stereo

import (
	"math"
	"runtime"
	"sync"
)

// Aggregator runs the row-parallel winner-take-all disparity selection.
// Rows are independent work units: each worker touches only its own row
// of D1/E1 and, because disparity shifts only the column never the row,
// only its own row of D2/E2 too -- so no cross-row synchronization is
// required.
type Aggregator struct {
	img1, img2  *Image
	costVolume  []*Image
	tables      *Tables
	radius      int
	dMin, dMax  int
	comb        Combinator
	combine     combineFunc
}

// NewAggregator builds an aggregator for the given inputs. costVolume must
// have dMax-dMin+1 layers, one per disparity, ordered ascending.
func NewAggregator(img1, img2 *Image, costVolume []*Image, tables *Tables, radius, dMin, dMax int, comb Combinator) *Aggregator {
	return &Aggregator{
		img1:       img1,
		img2:       img2,
		costVolume: costVolume,
		tables:     tables,
		radius:     radius,
		dMin:       dMin,
		dMax:       dMax,
		comb:       comb,
		combine:    combinatorFunc(comb),
	}
}

// Run computes D1 (disparity from image 1 to image 2) and D2 (disparity
// from image 2 to image 1: at target column x+d it holds -d, the negated
// reference-side disparity). Both maps are pre-filled with the sentinel dMin-1 and
// refined by strict winner-take-all as candidates are evaluated in
// ascending d.
func (a *Aggregator) Run() (d1, d2 *Image) {
	w, h := a.img1.W, a.img1.H
	sentinel := float32(a.dMin - 1)

	d1, _ = NewImage(w, h, 1)
	d2, _ = NewImage(w, h, 1)
	e1 := make([]float64, w*h)
	e2 := make([]float64, w*h)
	for i := range d1.Pix {
		d1.Pix[i] = sentinel
		d2.Pix[i] = sentinel
		e1[i] = math.Inf(1)
		e2[i] = math.Inf(1)
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for y := 0; y < h; y++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(y int) {
			defer wg.Done()
			defer func() { <-sem }()
			a.processRow(y, d1, d2, e1, e2)
		}(y)
	}
	wg.Wait()

	return d1, d2
}

// processRow evaluates every reference column of row y against every
// candidate disparity, reusing a ring of target support windows so each
// target column's support is built exactly once per row.
func (a *Aggregator) processRow(y int, d1, d2 *Image, e1, e2 []float64) {
	w := a.img1.W
	nd := a.dMax - a.dMin + 1
	ringLen := nd
	useTarget := a.comb != CombLeft
	if !useTarget {
		ringLen = 1
	}

	ring := make([]*Support, ringLen)
	for i := range ring {
		ring[i] = newSupport(a.radius)
	}

	slot := func(targetCol int) int {
		m := (targetCol - a.dMin) % ringLen
		if m < 0 {
			m += ringLen
		}
		return m
	}

	if useTarget {
		for tc := 0; tc <= a.dMax-1; tc++ {
			BuildSupport(a.img2, tc, y, a.radius, a.tables, ring[slot(tc)])
		}
	}

	w1 := newSupport(a.radius)
	rowBase := y * w

	for x := 0; x < w; x++ {
		BuildSupport(a.img1, x, y, a.radius, a.tables, w1)

		if useTarget {
			tc := x + a.dMax
			BuildSupport(a.img2, tc, y, a.radius, a.tables, ring[slot(tc)])
		}

		for d := a.dMin; d <= a.dMax; d++ {
			tx := x + d
			if tx < 0 || tx >= w {
				continue
			}

			var w2 *Support
			if useTarget {
				w2 = ring[slot(tx)]
			}

			num, den := a.accumulate(w1, w2, a.costVolume[d-a.dMin], x, y, d)
			if den == 0 {
				continue
			}
			e := num / den

			idx1 := rowBase + x
			if e < e1[idx1] {
				e1[idx1] = e
				d1.Pix[idx1] = float32(d)
			}

			idx2 := rowBase + tx
			if e < e2[idx2] {
				e2[idx2] = e
				d2.Pix[idx2] = float32(-d)
			}
		}
	}
}

// accumulate sums the aggregated-cost numerator and denominator for one
// candidate disparity at (x,y), skipping positions where (x+dx, y+dy)
// falls outside the reference image (the cost layer has no entry there)
// and positions where x+d+dx falls outside the target image. BuildSupport
// already zero-weights the latter in w2, which removes them for MULT and
// MIN; the explicit check also removes them for MAX, PLUS and LEFT.
func (a *Aggregator) accumulate(w1, w2 *Support, costLayer *Image, x, y, d int) (num, den float64) {
	r := a.radius
	w, h := a.img1.W, a.img1.H
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
			if tx := px + d; tx < 0 || tx >= w {
				continue
			}
			cw := w1.At(dx, dy)
			if a.comb != CombLeft {
				cw = a.combine(cw, w2.At(dx, dy))
			}
			if cw == 0 {
				continue
			}
			num += cw * float64(costLayer.At(px, py, 0))
			den += cw
		}
	}
	return
}
