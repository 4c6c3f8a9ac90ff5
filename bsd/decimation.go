package bsd

// DecimationTable precomputes, for one distinct weight-grid size within a
// block footprint, the bilinear (2D) or simplex (3D) interpolation that maps
// a quantised weight grid to per-texel weights — in both directions, plus
// the cross-linked "other weights touching this texel" acceleration the
// encoder's inner loop relies on.
//
// The forward and reverse map arrays are padded to a multiple of the target
// SIMD width (§5); padding texel/weight index slots repeat the last valid
// lane so that a SIMD gather can safely over-fetch, and padding coefficient
// slots are zero. The cross-link arrays (TexelWeightsTexel and its float
// twin) are not padded.
//
// Ported from decimation_table / initialize_decimation_table_2d /
// initialize_decimation_table_3d (Source/astcenc_block_sizes.cpp).
type DecimationTable struct {
	TexelCount int
	WeightCount int
	WeightX, WeightY, WeightZ int

	// TexelWeightCount[t] is the number of grid weights (1..4) that
	// influence texel t.
	TexelWeightCount []uint8

	// Forward map, transposed to [slot][texel]. Unused slots (beyond
	// TexelWeightCount[t]) are zeroed.
	TexelWeights4T      [4][]uint8
	TexelWeightsInt4T   [4][]uint8
	TexelWeightsFloat4T [4][]float32

	// WeightTexelCount[w] is the number of texels that weight w influences.
	WeightTexelCount []uint8

	// Reverse map, transposed to [slot][weight]. Row count is the largest
	// WeightTexelCount over all weights, rounded to a SIMD multiple; every
	// row is padded per-weight by repeating that weight's last valid texel.
	WeightTexel [][]uint8
	WeightsFlt  [][]float32

	// TexelWeightsTexel[w][j][k] is the k-th weight touching the j-th texel
	// that touches weight w, with slot 0 swapped to be the identity weight
	// (== w) so the encoder can fetch "the other weights at this texel"
	// without a branch. TexelWeightsFloatTexel is its float-coefficient twin.
	TexelWeightsTexel      [][][4]uint8
	TexelWeightsFloatTexel [][][4]float32
}

type decimationBuildState struct {
	texelsPerBlock  int
	weightsPerBlock int

	weightCountOfTexel  []uint8
	gridWeightsOfTexel  [][4]uint8
	weightsOfTexel      [][4]uint8

	texelCountOfWeight    []int
	maxTexelCountOfWeight int
	texelsOfWeight        [][]uint8
	texelWeightsOfWeight  [][]int
}

func newDecimationBuildState(texelsPerBlock, weightsPerBlock int) *decimationBuildState {
	s := &decimationBuildState{
		texelsPerBlock:       texelsPerBlock,
		weightsPerBlock:      weightsPerBlock,
		weightCountOfTexel:   make([]uint8, texelsPerBlock),
		gridWeightsOfTexel:   make([][4]uint8, texelsPerBlock),
		weightsOfTexel:       make([][4]uint8, texelsPerBlock),
		texelCountOfWeight:   make([]int, weightsPerBlock),
		texelsOfWeight:       make([][]uint8, weightsPerBlock),
		texelWeightsOfWeight: make([][]int, weightsPerBlock),
	}
	return s
}

func (s *decimationBuildState) record(texel int, qweight [4]int, weight [4]int) {
	for i := 0; i < 4; i++ {
		if weight[i] == 0 {
			continue
		}
		slot := s.weightCountOfTexel[texel]
		s.gridWeightsOfTexel[texel][slot] = uint8(qweight[i])
		s.weightsOfTexel[texel][slot] = uint8(weight[i])
		s.weightCountOfTexel[texel]++

		w := qweight[i]
		s.texelsOfWeight[w] = append(s.texelsOfWeight[w], uint8(texel))
		s.texelWeightsOfWeight[w] = append(s.texelWeightsOfWeight[w], weight[i])
		s.texelCountOfWeight[w]++
		if s.texelCountOfWeight[w] > s.maxTexelCountOfWeight {
			s.maxTexelCountOfWeight = s.texelCountOfWeight[w]
		}
	}
}

// finish assembles the populated DecimationTable from the per-texel and
// per-weight accumulators, applying the transposed-layout, cross-link, and
// SIMD-padding rules common to both the 2D and 3D builders.
func (s *decimationBuildState) finish(weightX, weightY, weightZ int) *DecimationTable {
	dt := &DecimationTable{
		TexelCount:  s.texelsPerBlock,
		WeightCount: s.weightsPerBlock,
		WeightX:     weightX,
		WeightY:     weightY,
		WeightZ:     weightZ,
	}

	texelsPadded := roundUpToSIMDMultiple(s.texelsPerBlock)
	weightsPadded := roundUpToSIMDMultiple(s.weightsPerBlock)

	dt.TexelWeightCount = make([]uint8, texelsPadded)
	for k := 0; k < 4; k++ {
		dt.TexelWeights4T[k] = make([]uint8, texelsPadded)
		dt.TexelWeightsInt4T[k] = make([]uint8, texelsPadded)
		dt.TexelWeightsFloat4T[k] = make([]float32, texelsPadded)
	}

	for t := 0; t < s.texelsPerBlock; t++ {
		n := s.weightCountOfTexel[t]
		dt.TexelWeightCount[t] = n
		for j := uint8(0); j < n; j++ {
			dt.TexelWeights4T[j][t] = s.gridWeightsOfTexel[t][j]
			dt.TexelWeightsInt4T[j][t] = s.weightsOfTexel[t][j]
			dt.TexelWeightsFloat4T[j][t] = float32(s.weightsOfTexel[t][j]) * (1.0 / TexelWeightSum)
		}
	}
	// Padding texel lanes: index slots repeat the last valid texel's
	// indices; count and coefficient slots stay zero.
	if s.texelsPerBlock > 0 {
		last := s.texelsPerBlock - 1
		for t := s.texelsPerBlock; t < texelsPadded; t++ {
			for k := 0; k < 4; k++ {
				dt.TexelWeights4T[k][t] = dt.TexelWeights4T[k][last]
			}
		}
	}

	dt.WeightTexelCount = make([]uint8, weightsPadded)
	rows := roundUpToSIMDMultiple(s.maxTexelCountOfWeight)
	if rows == 0 {
		rows = simdWidth
	}
	dt.WeightTexel = make([][]uint8, rows)
	dt.WeightsFlt = make([][]float32, rows)
	for j := range dt.WeightTexel {
		dt.WeightTexel[j] = make([]uint8, weightsPadded)
		dt.WeightsFlt[j] = make([]float32, weightsPadded)
	}

	dt.TexelWeightsTexel = make([][][4]uint8, s.weightsPerBlock)
	dt.TexelWeightsFloatTexel = make([][][4]float32, s.weightsPerBlock)

	for w := 0; w < s.weightsPerBlock; w++ {
		texelCountWt := s.texelCountOfWeight[w]
		dt.WeightTexelCount[w] = uint8(texelCountWt)

		dt.TexelWeightsTexel[w] = make([][4]uint8, texelCountWt)
		dt.TexelWeightsFloatTexel[w] = make([][4]float32, texelCountWt)

		for j := 0; j < texelCountWt; j++ {
			texel := s.texelsOfWeight[w][j]
			dt.WeightTexel[j][w] = texel
			dt.WeightsFlt[j][w] = float32(s.texelWeightsOfWeight[w][j])

			// Cross-link: gather the (up to 4) weights touching this texel,
			// then swap slot 0 to be the identity weight w.
			var other [4]uint8
			var otherF [4]float32
			swapIdx := -1
			for k := 0; k < 4; k++ {
				dttw := dt.TexelWeights4T[k][texel]
				dttwf := dt.TexelWeightsFloat4T[k][texel]
				if int(dttw) == w && dttwf != 0.0 {
					swapIdx = k
				}
				other[k] = dttw
				otherF[k] = dttwf
			}
			if swapIdx > 0 {
				other[0], other[swapIdx] = other[swapIdx], other[0]
				otherF[0], otherF[swapIdx] = otherF[swapIdx], otherF[0]
			}
			dt.TexelWeightsTexel[w][j] = other
			dt.TexelWeightsFloatTexel[w][j] = otherF
		}

		if texelCountWt > 0 {
			lastTexel := dt.WeightTexel[texelCountWt-1][w]
			for j := texelCountWt; j < rows; j++ {
				dt.WeightTexel[j][w] = lastTexel
				dt.WeightsFlt[j][w] = 0.0
			}
		}
	}

	// Pad the weight-indexed columns beyond the real weight count by
	// filling every row with the last weight's last valid texel (and a zero
	// coefficient), so a SIMD gather landing in the tail still dereferences
	// a valid texel.
	if s.weightsPerBlock > 0 {
		lastTexelCountWt := s.texelCountOfWeight[s.weightsPerBlock-1]
		var lastTexel uint8
		if lastTexelCountWt > 0 {
			lastTexel = dt.WeightTexel[lastTexelCountWt-1][s.weightsPerBlock-1]
		}
		for w := s.weightsPerBlock; w < weightsPadded; w++ {
			dt.WeightTexelCount[w] = 0
			for j := 0; j < rows; j++ {
				dt.WeightTexel[j][w] = lastTexel
				dt.WeightsFlt[j][w] = 0.0
			}
		}
	}

	return dt
}

// weightGridPosition computes the fixed-point weight-grid coordinate for one
// axis, per §4.6/§4.7's shared derivation.
func weightGridPosition(texels, weights, coord int) int {
	return (((1024+texels/2)/(texels-1))*coord*(weights-1) + 32) >> 6
}

// NewDecimationTable2D builds the bilinear 2D decimation table for a given
// texel grid and weight grid.
//
// Ported from initialize_decimation_table_2d (Source/astcenc_block_sizes.cpp).
func NewDecimationTable2D(xTexels, yTexels, xWeights, yWeights int) *DecimationTable {
	texelsPerBlock := xTexels * yTexels
	weightsPerBlock := xWeights * yWeights

	s := newDecimationBuildState(texelsPerBlock, weightsPerBlock)

	for y := 0; y < yTexels; y++ {
		for x := 0; x < xTexels; x++ {
			texel := y*xTexels + x

			xWeight := weightGridPosition(xTexels, xWeights, x)
			yWeight := weightGridPosition(yTexels, yWeights, y)

			xFrac := xWeight & 0xF
			yFrac := yWeight & 0xF
			xInt := xWeight >> 4
			yInt := yWeight >> 4

			q0 := xInt + yInt*xWeights
			qweight := [4]int{q0, q0 + 1, q0 + xWeights, q0 + xWeights + 1}

			prod := xFrac * yFrac
			w3 := (prod + 8) >> 4
			w1 := xFrac - w3
			w2 := yFrac - w3
			w0 := 16 - xFrac - yFrac + w3
			weight := [4]int{w0, w1, w2, w3}

			s.record(texel, qweight, weight)
		}
	}

	return s.finish(xWeights, yWeights, 1)
}

// NewDecimationTable3D builds the simplex 3D decimation table for a given
// texel grid and weight grid.
//
// Ported from initialize_decimation_table_3d (Source/astcenc_block_sizes.cpp).
func NewDecimationTable3D(xTexels, yTexels, zTexels, xWeights, yWeights, zWeights int) *DecimationTable {
	texelsPerBlock := xTexels * yTexels * zTexels
	weightsPerBlock := xWeights * yWeights * zWeights

	s := newDecimationBuildState(texelsPerBlock, weightsPerBlock)

	n := xWeights
	nm := xWeights * yWeights

	for z := 0; z < zTexels; z++ {
		for y := 0; y < yTexels; y++ {
			for x := 0; x < xTexels; x++ {
				texel := (z*yTexels+y)*xTexels + x

				xWeight := weightGridPosition(xTexels, xWeights, x)
				yWeight := weightGridPosition(yTexels, yWeights, y)
				zWeight := weightGridPosition(zTexels, zWeights, z)

				fs := xWeight & 0xF
				ft := yWeight & 0xF
				fp := zWeight & 0xF
				xInt := xWeight >> 4
				yInt := yWeight >> 4
				zInt := zWeight >> 4

				q0 := (zInt*yWeights+yInt)*xWeights + xInt
				q3 := ((zInt+1)*yWeights+(yInt+1))*xWeights + (xInt + 1)

				cas := 0
				if fs > ft {
					cas |= 4
				}
				if ft > fp {
					cas |= 2
				}
				if fs > fp {
					cas |= 1
				}

				var s1, s2, w0, w1, w2, w3 int
				switch cas {
				case 7:
					s1, s2 = 1, n
					w0, w1, w2, w3 = 16-fs, fs-ft, ft-fp, fp
				case 3:
					s1, s2 = n, 1
					w0, w1, w2, w3 = 16-ft, ft-fs, fs-fp, fp
				case 5:
					s1, s2 = 1, nm
					w0, w1, w2, w3 = 16-fs, fs-fp, fp-ft, ft
				case 4:
					s1, s2 = nm, 1
					w0, w1, w2, w3 = 16-fp, fp-fs, fs-ft, ft
				case 2:
					s1, s2 = n, nm
					w0, w1, w2, w3 = 16-ft, ft-fp, fp-fs, fs
				case 0:
					fallthrough
				default:
					// Cases 0/1/6 share this formula. §4.7/§9 Open Question:
					// 1 and 6 are unreachable for distinct fs/ft/fp, kept for
					// parity with the reference's own fallthrough-to-default.
					s1, s2 = nm, n
					w0, w1, w2, w3 = 16-fp, fp-ft, ft-fs, fs
				}

				q1 := q0 + s1
				q2 := q1 + s2

				qweight := [4]int{q0, q1, q2, q3}
				weight := [4]int{w0, w1, w2, w3}

				s.record(texel, qweight, weight)
			}
		}
	}

	return s.finish(xWeights, yWeights, zWeights)
}
