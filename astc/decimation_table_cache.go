package astc

import (
	"sync"

	"github.com/astc-go/astc/bsd"
)

type decimationKey struct {
	bx uint8
	by uint8
	bz uint8
	wx uint8
	wy uint8
	wz uint8
}

type decimationEntry struct {
	idx [4]uint8
	w   [4]uint8
}

var decimationTables struct {
	mu sync.RWMutex
	m  map[decimationKey][]decimationEntry
}

// getDecimationTable returns the per-texel forward weight map for one
// (block size, weight grid) pair, in the legacy 4-slot shape this package's
// decoder consumes.
//
// The interpolation math is owned by bsd.NewDecimationTable2D/3D; this cache
// only reshapes bsd's transposed, SIMD-padded DecimationTable into the
// flat per-texel entries decode_context.go was written against.
func getDecimationTable(blockX, blockY, blockZ, xWeights, yWeights, zWeights int) []decimationEntry {
	key := decimationKey{
		bx: uint8(blockX),
		by: uint8(blockY),
		bz: uint8(blockZ),
		wx: uint8(xWeights),
		wy: uint8(yWeights),
		wz: uint8(zWeights),
	}

	decimationTables.mu.RLock()
	if decimationTables.m != nil {
		if t, ok := decimationTables.m[key]; ok {
			decimationTables.mu.RUnlock()
			return t
		}
	}
	decimationTables.mu.RUnlock()

	decimationTables.mu.Lock()
	defer decimationTables.mu.Unlock()
	if decimationTables.m == nil {
		decimationTables.m = make(map[decimationKey][]decimationEntry)
	} else if t, ok := decimationTables.m[key]; ok {
		return t
	}

	texelCount := blockX * blockY * blockZ
	weightsPerPlane := xWeights * yWeights * zWeights

	table := make([]decimationEntry, texelCount)
	if texelCount == 0 || weightsPerPlane <= 0 ||
		blockX <= 1 || blockY <= 1 || xWeights <= 0 || yWeights <= 0 ||
		(blockZ > 1 && (blockZ <= 1 || zWeights <= 0)) {
		decimationTables.m[key] = table
		return table
	}

	var dt *bsd.DecimationTable
	if blockZ == 1 {
		dt = bsd.NewDecimationTable2D(blockX, blockY, xWeights, yWeights)
	} else {
		dt = bsd.NewDecimationTable3D(blockX, blockY, blockZ, xWeights, yWeights, zWeights)
	}

	for t := 0; t < texelCount; t++ {
		var e decimationEntry
		n := dt.TexelWeightCount[t]
		for k := uint8(0); k < n; k++ {
			e.idx[k] = dt.TexelWeights4T[k][t]
			e.w[k] = dt.TexelWeightsInt4T[k][t]
		}
		table[t] = e
	}

	decimationTables.m[key] = table
	return table
}
