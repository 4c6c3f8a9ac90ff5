package bsd

import (
	"runtime"
	"strings"
	"sync"
)

// DecimationMode is one distinct weight grid interned during descriptor
// assembly, shared by every block mode that selects that grid.
type DecimationMode struct {
	// MaxPrec1Plane and MaxPrec2Planes are the highest quant levels (of the
	// first 12, Quant2..Quant32) whose ISE bit cost still fits the block's
	// weight budget, for single-plane and dual-plane weight counts
	// respectively. maxPrecNone (-1) marks "no quant level fits".
	MaxPrec1Plane    int
	MaxPrec2Planes   int
	PercentileHit    bool
	PercentileAlways bool

	// Table is nil for the zeroed tail past the real decimation-mode count.
	Table *DecimationTable
}

// BlockMode is one packed, selected entry from the 11-bit block-mode index
// space, bound to the decimation mode that describes its weight grid.
type BlockMode struct {
	DecimationMode   int
	QuantMode        QuantMethod
	IsDualPlane      bool
	ModeIndex        int
	PercentileHit    bool
	PercentileAlways bool
}

// BlockSizeDescriptor is the fully assembled block-size descriptor (BSD):
// every table the encoder and decoder consult for one (xdim, ydim, zdim)
// block footprint.
type BlockSizeDescriptor struct {
	Xdim, Ydim, Zdim int
	TexelCount       int

	// DecimationModes has exactly MaxDecimationModes entries; entries past
	// the real count are zeroed (MaxPrec1Plane == MaxPrec2Planes ==
	// maxPrecNone, Table == nil).
	DecimationModes []DecimationMode

	// BlockModes holds only the selected, valid block modes, in ascending
	// original-index order.
	BlockModes []BlockMode

	// BlockModePackedIndex[i] is the index into BlockModes for original
	// 11-bit mode i, or blockModeIndexInvalid.
	BlockModePackedIndex [MaxWeightModes]int

	// PartitionInfo is laid out {2-seeds, 3-seeds, 4-seeds, single}, per
	// buildPartitionTables.
	PartitionInfo []PartitionInfo

	KmeansTexels []int
}

// Free releases the descriptor's decimation tables. It is a no-op in this
// port (tables are ordinary garbage-collected slices) and exists only for
// API parity with term_block_size_descriptor.
func (b *BlockSizeDescriptor) Free() {}

type decimationKey struct {
	x, y, z int
}

// NewBlockSizeDescriptor builds the complete block-size descriptor for one
// (xdim, ydim, zdim) block footprint.
//
// canOmitModes, when true, allows the percentile heuristic (PercentileTable,
// 2D only) to exclude block modes whose percentile exceeds modeCutoff; 3D
// assembly always selects every valid candidate.
//
// Ported from init_block_size_descriptor / construct_block_size_descriptor_2d
// / construct_block_size_descriptor_3d (Source/astcenc_block_sizes.cpp).
func NewBlockSizeDescriptor(xdim, ydim, zdim int, canOmitModes bool, modeCutoff float32) (bsd *BlockSizeDescriptor, err error) {
	if xdim < 4 || xdim > 12 || ydim < 4 || ydim > 12 {
		return nil, newError(ErrBadBlockSize, "bsd: xdim/ydim out of range")
	}
	if zdim != 1 && (zdim < 3 || zdim > 6) {
		return nil, newError(ErrBadBlockSize, "bsd: zdim out of range")
	}
	if xdim*ydim*zdim > MaxTexelsPerBlock {
		return nil, newError(ErrBadBlockSize, "bsd: texel count exceeds MaxTexelsPerBlock")
	}
	if modeCutoff < 0 || modeCutoff > 1 {
		return nil, newError(ErrBadParam, "bsd: mode_cutoff out of range")
	}

	// Table construction is ordinary Go slice/struct allocation with no
	// explicit allocator to fail, but callers operating under a hard memory
	// ceiling still expect the §7 allocation-failure contract: convert a
	// runtime.Error panic whose message reports out of memory into a
	// returned error. An *InvariantError from this package, and any other
	// panic, is re-raised.
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*InvariantError); ok {
				panic(r)
			}
			if re, ok := r.(runtime.Error); ok && isOutOfMemory(re) {
				bsd, err = nil, newError(ErrOutOfMem, "bsd: out of memory constructing block size descriptor")
				return
			}
			panic(r)
		}
	}()

	return newBlockSizeDescriptor(xdim, ydim, zdim, canOmitModes, modeCutoff)
}

func isOutOfMemory(err runtime.Error) bool {
	return strings.Contains(err.Error(), "out of memory")
}

func newBlockSizeDescriptor(xdim, ydim, zdim int, canOmitModes bool, modeCutoff float32) (*BlockSizeDescriptor, error) {
	is2D := zdim == 1

	bsd := &BlockSizeDescriptor{
		Xdim:       xdim,
		Ydim:       ydim,
		Zdim:       zdim,
		TexelCount: xdim * ydim * zdim,
	}
	for i := range bsd.BlockModePackedIndex {
		bsd.BlockModePackedIndex[i] = blockModeIndexInvalid
	}

	var percentiles [MaxWeightModes]float32
	if is2D {
		percentiles = PercentileTable(xdim, ydim)
	}

	demIndex := make(map[decimationKey]int)

	for i := 0; i < MaxWeightModes; i++ {
		var xWeights, yWeights, zWeights int
		var isDualPlane bool
		var quantMode QuantMethod
		var ok bool

		if is2D {
			var xw, yw int
			xw, yw, isDualPlane, quantMode, _, ok = DecodeBlockMode2D(i)
			xWeights, yWeights, zWeights = xw, yw, 1
		} else {
			xWeights, yWeights, zWeights, isDualPlane, quantMode, _, ok = DecodeBlockMode3D(i)
		}
		if !ok {
			continue
		}
		if xWeights > xdim || yWeights > ydim || (!is2D && zWeights > zdim) {
			continue
		}

		var percentileHit, percentileAlways, selected bool
		if is2D {
			p := percentiles[i]
			percentileHit = p <= modeCutoff
			percentileAlways = p == 0
			selected = percentileHit || !canOmitModes
		} else {
			percentileHit = true
			percentileAlways = true
			selected = true
		}
		if !selected {
			continue
		}

		key := decimationKey{xWeights, yWeights, zWeights}
		demIdx, known := demIndex[key]
		if !known {
			demIdx = len(bsd.DecimationModes)
			demIndex[key] = demIdx

			var table *DecimationTable
			if is2D {
				table = NewDecimationTable2D(xdim, ydim, xWeights, yWeights)
			} else {
				table = NewDecimationTable3D(xdim, ydim, zdim, xWeights, yWeights, zWeights)
			}

			weightCount := xWeights * yWeights * zWeights
			maxPrec1Plane := maxPrecNone
			maxPrec2Planes := maxPrecNone
			for q := 0; q <= int(Quant32); q++ {
				if ISESequenceBitCount(weightCount, QuantMethod(q)) <= MaxWeightBitsPerBlock {
					maxPrec1Plane = q
				}
				if 2*weightCount <= MaxWeightsPerBlock {
					if ISESequenceBitCount(2*weightCount, QuantMethod(q)) <= MaxWeightBitsPerBlock {
						maxPrec2Planes = q
					}
				}
			}
			if maxPrec1Plane == maxPrecNone && maxPrec2Planes == maxPrecNone {
				invariantViolation("no quant level fits an accepted weight count")
			}

			bsd.DecimationModes = append(bsd.DecimationModes, DecimationMode{
				MaxPrec1Plane:  maxPrec1Plane,
				MaxPrec2Planes: maxPrec2Planes,
				Table:          table,
			})
		}

		dm := &bsd.DecimationModes[demIdx]
		dm.PercentileHit = dm.PercentileHit || percentileHit
		dm.PercentileAlways = dm.PercentileAlways || percentileAlways

		bsd.BlockModes = append(bsd.BlockModes, BlockMode{
			DecimationMode:   demIdx,
			QuantMode:        quantMode,
			IsDualPlane:      isDualPlane,
			ModeIndex:        i,
			PercentileHit:    percentileHit,
			PercentileAlways: percentileAlways,
		})
		bsd.BlockModePackedIndex[i] = len(bsd.BlockModes) - 1
	}

	for len(bsd.DecimationModes) < MaxDecimationModes {
		bsd.DecimationModes = append(bsd.DecimationModes, DecimationMode{
			MaxPrec1Plane:  maxPrecNone,
			MaxPrec2Planes: maxPrecNone,
		})
	}

	bsd.KmeansTexels = AssignKmeansTexels(bsd.TexelCount)
	bsd.PartitionInfo = buildPartitionTables(xdim, ydim, zdim, bsd.KmeansTexels)

	return bsd, nil
}

type bsdCacheKey struct {
	xdim, ydim, zdim int
	canOmitModes     bool
	modeCutoff       float32
}

var (
	bsdCacheMu sync.RWMutex
	bsdCache   = make(map[bsdCacheKey]*BlockSizeDescriptor)
)

// Get returns the memoized block-size descriptor for the given parameters,
// constructing and caching it on first use. Callers share the returned
// descriptor; it must be treated as immutable (§5).
func Get(xdim, ydim, zdim int, canOmitModes bool, modeCutoff float32) (*BlockSizeDescriptor, error) {
	key := bsdCacheKey{xdim, ydim, zdim, canOmitModes, modeCutoff}

	bsdCacheMu.RLock()
	cached, ok := bsdCache[key]
	bsdCacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	bsdCacheMu.Lock()
	defer bsdCacheMu.Unlock()
	if cached, ok := bsdCache[key]; ok {
		return cached, nil
	}

	built, err := NewBlockSizeDescriptor(xdim, ydim, zdim, canOmitModes, modeCutoff)
	if err != nil {
		return nil, err
	}
	bsdCache[key] = built
	return built, nil
}
