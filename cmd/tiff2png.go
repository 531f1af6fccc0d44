package main

import (
	"fmt"

	"github.com/cwbudde/stereobw/internal/imageio"
	"github.com/spf13/cobra"
)

var (
	flagVMin, flagVMax       float64
	flagGrayMin, flagGrayMax float64
)

var tiff2pngCmd = &cobra.Command{
	Use:   "tiff2png in.tif out.png",
	Short: "Render a 32-bit float disparity TIFF to an 8-bit PNG",
	Long: `tiff2png maps a disparity TIFF to grayscale via the affine
transform gray = a*value + b over [vMin,vMax] -> [grayMin,grayMax].
NaN or out-of-range pixels render as cyan.`,
	Args: cobra.ExactArgs(2),
	RunE: runTiff2PNG,
}

func init() {
	tiff2pngCmd.Flags().Float64Var(&flagVMin, "vmin", 0, "disparity value mapped to grayMin")
	tiff2pngCmd.Flags().Float64Var(&flagVMax, "vmax", 64, "disparity value mapped to grayMax")
	tiff2pngCmd.Flags().Float64Var(&flagGrayMin, "graymin", 0, "output gray level for vMin")
	tiff2pngCmd.Flags().Float64Var(&flagGrayMax, "graymax", 255, "output gray level for vMax")
	rootCmd.AddCommand(tiff2pngCmd)
}

func runTiff2PNG(cmd *cobra.Command, args []string) error {
	img, err := imageio.LoadTIFF32(args[0])
	if err != nil {
		return err
	}
	p := imageio.RenderParams{
		VMin: flagVMin, VMax: flagVMax,
		GrayMin: flagGrayMin, GrayMax: flagGrayMax,
	}
	if err := imageio.RenderDisparityPNG(args[1], img, p); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[1])
	return nil
}
