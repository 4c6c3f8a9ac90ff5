// Command bsdtool dumps summary statistics for the block-size descriptor of
// a requested block footprint: decimation mode count, selected block mode
// count, and partition-table dedup rate.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/astc-go/astc/bsd"
)

func main() {
	var (
		block        string
		canOmitModes bool
		modeCutoff   float64
	)
	flag.StringVar(&block, "block", "4x4", "block size: NxM or NxMxK")
	flag.BoolVar(&canOmitModes, "can-omit-modes", false, "allow the percentile heuristic to omit low-utility 2D block modes")
	flag.Float64Var(&modeCutoff, "mode-cutoff", 1.0, "percentile cutoff in [0,1] for -can-omit-modes")
	flag.Parse()

	xdim, ydim, zdim, err := parseBlock3D(block)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if modeCutoff < 0 || modeCutoff > 1 {
		fmt.Fprintln(os.Stderr, "invalid -mode-cutoff (want [0,1])")
		os.Exit(2)
	}

	b, err := bsd.Get(xdim, ydim, zdim, canOmitModes, float32(modeCutoff))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	decimationModesUsed := 0
	for _, dm := range b.DecimationModes {
		if dm.Table != nil {
			decimationModesUsed++
		}
	}

	invalid2, invalid3, invalid4 := 0, 0, 0
	for i := 0; i < bsd.PartitionCount; i++ {
		if b.PartitionInfo[i].PartitionCount == 0 {
			invalid2++
		}
		if b.PartitionInfo[bsd.PartitionCount+i].PartitionCount == 0 {
			invalid3++
		}
		if b.PartitionInfo[2*bsd.PartitionCount+i].PartitionCount == 0 {
			invalid4++
		}
	}

	fmt.Printf("block=%dx%dx%d texel_count=%d\n", b.Xdim, b.Ydim, b.Zdim, b.TexelCount)
	fmt.Printf("decimation_modes=%d/%d\n", decimationModesUsed, bsd.MaxDecimationModes)
	fmt.Printf("block_modes=%d/%d\n", len(b.BlockModes), bsd.MaxWeightModes)
	fmt.Printf("kmeans_texels=%d\n", len(b.KmeansTexels))
	fmt.Printf("partition_dedup: pc=2 invalid=%d/%d pc=3 invalid=%d/%d pc=4 invalid=%d/%d\n",
		invalid2, bsd.PartitionCount, invalid3, bsd.PartitionCount, invalid4, bsd.PartitionCount)
}

func parseBlock3D(s string) (x, y, z int, err error) {
	parts := strings.Split(s, "x")
	switch len(parts) {
	case 2:
		_, err = fmt.Sscanf(s, "%dx%d", &x, &y)
		z = 1
	case 3:
		_, err = fmt.Sscanf(s, "%dx%dx%d", &x, &y, &z)
	default:
		return 0, 0, 0, fmt.Errorf("invalid -block %q (want like 4x4 or 4x4x4)", s)
	}
	if err != nil || x <= 0 || y <= 0 || z <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid -block %q (want like 4x4 or 4x4x4)", s)
	}
	return x, y, z, nil
}
