package main

import (
	"fmt"

	"github.com/cwbudde/stereobw/internal/imageio"
	"github.com/cwbudde/stereobw/internal/stereo"
	"github.com/spf13/cobra"
)

var (
	flagViewRadius   int
	flagViewGammaCol float64
	flagViewGammaPos float64
)

var weightviewCmd = &cobra.Command{
	Use:   "weightview image.png x y out.png",
	Short: "Render the bilateral support window around one pixel",
	Long: `weightview builds the bilateral support window centered at
(x,y) in the given image and renders it as a grayscale PNG, for
inspecting how the color and spatial kernels shape a single window.
It uses the spatial-kernel exponent alpha=2, distinct from the
matcher's alpha=1, per the documented divergence between the two
tools.`,
	Args: cobra.ExactArgs(4),
	RunE: runWeightview,
}

func init() {
	weightviewCmd.Flags().IntVar(&flagViewRadius, "radius", 17, "support window radius")
	weightviewCmd.Flags().Float64Var(&flagViewGammaCol, "gcol", 12, "color-similarity gamma")
	weightviewCmd.Flags().Float64Var(&flagViewGammaPos, "gpos", 17.5, "spatial-distance gamma")
	rootCmd.AddCommand(weightviewCmd)
}

func runWeightview(cmd *cobra.Command, args []string) error {
	img, err := imageio.LoadRGB(args[0])
	if err != nil {
		return err
	}

	var x, y int
	if _, err := fmt.Sscanf(args[1], "%d", &x); err != nil {
		return fmt.Errorf("invalid x %q: %w", args[1], err)
	}
	if _, err := fmt.Sscanf(args[2], "%d", &y); err != nil {
		return fmt.Errorf("invalid y %q: %w", args[2], err)
	}
	if !img.InBounds(x, y) {
		return fmt.Errorf("center (%d,%d) outside %dx%d image", x, y, img.W, img.H)
	}

	r := flagViewRadius
	tables := stereo.BuildTables(img.C, flagViewGammaCol, flagViewGammaPos, r, 2)
	sup := stereo.NewSupportWindow(r)
	stereo.BuildSupport(img, x, y, r, tables, sup)

	side := 2*r + 1
	var maxW float64
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if v := sup.At(dx, dy); v > maxW {
				maxW = v
			}
		}
	}
	if maxW == 0 {
		maxW = 1
	}

	out, err := stereo.NewImage(side, side, 3)
	if err != nil {
		return err
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			gray := float32(255 * sup.At(dx, dy) / maxW)
			out.Set(dx+r, dy+r, 0, gray)
			out.Set(dx+r, dy+r, 1, gray)
			out.Set(dx+r, dy+r, 2, gray)
		}
	}

	if err := imageio.SavePNG8(args[3], out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[3])
	return nil
}
