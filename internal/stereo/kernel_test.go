package stereo

import (
	"math"
	"testing"
)

// TestBuildTablesDistCShape checks P5: distC is strictly positive,
// distC[0]=1, and distC[k+1] = distC[k]*exp(-1/(C*gammaCol)).
func TestBuildTablesDistCShape(t *testing.T) {
	tables := BuildTables(3, 12, 17.5, 2, 1)
	if tables.DistC[0] != 1 {
		t.Fatalf("distC[0] = %v, want 1", tables.DistC[0])
	}
	e2 := math.Exp(-1.0 / (3 * 12))
	for k := 0; k < len(tables.DistC)-1; k++ {
		if tables.DistC[k] <= 0 {
			t.Fatalf("distC[%d] = %v, want > 0", k, tables.DistC[k])
		}
		want := tables.DistC[k] * e2
		if math.Abs(tables.DistC[k+1]-want) > 1e-12 {
			t.Fatalf("distC[%d] = %v, want %v", k+1, tables.DistC[k+1], want)
		}
	}
}

func TestBuildTablesDistPCenterIsMax(t *testing.T) {
	r := 3
	tables := BuildTables(1, 12, 17.5, r, 1)
	side := 2*r + 1
	center := tables.DistP[r*side+r]
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			v := tables.DistP[(dy+r)*side+(dx+r)]
			if v > center {
				t.Fatalf("DistP(%d,%d)=%v exceeds center %v", dx, dy, v, center)
			}
		}
	}
}

func TestColorIndexRounding(t *testing.T) {
	cases := []struct {
		l1   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{2.4, 2},
		{2.5, 3},
	}
	for _, c := range cases {
		if got := colorIndex(c.l1); got != c.want {
			t.Errorf("colorIndex(%v) = %d, want %d", c.l1, got, c.want)
		}
	}
}
