package bsd

import "testing"

func TestNewBlockSizeDescriptor_4x4(t *testing.T) {
	// S1: texel_count=16, kmeans_texel_count=16, at least one decimation
	// mode with (weight_x,weight_y)=(4,4), partition_count=1 info has
	// partition_texel_count=[16,0,0,0].
	b, err := NewBlockSizeDescriptor(4, 4, 1, false, 1.0)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor: %v", err)
	}
	if b.TexelCount != 16 {
		t.Fatalf("TexelCount = %d, want 16", b.TexelCount)
	}
	if len(b.KmeansTexels) != 16 {
		t.Fatalf("len(KmeansTexels) = %d, want 16", len(b.KmeansTexels))
	}

	found := false
	for _, dm := range b.DecimationModes {
		if dm.Table != nil && dm.Table.WeightX == 4 && dm.Table.WeightY == 4 {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no decimation mode with a 4x4 weight grid")
	}

	single := b.PartitionInfo[3*PartitionCount]
	want := [MaxPartitions]int{16, 0, 0, 0}
	if single.PartitionTexelCount != want {
		t.Fatalf("single-partition texel counts = %v, want %v", single.PartitionTexelCount, want)
	}
}

func TestNewBlockSizeDescriptor_DecimationModeArrayIsFullLength(t *testing.T) {
	b, err := NewBlockSizeDescriptor(6, 6, 1, true, 0.5)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor: %v", err)
	}
	if len(b.DecimationModes) != MaxDecimationModes {
		t.Fatalf("len(DecimationModes) = %d, want %d", len(b.DecimationModes), MaxDecimationModes)
	}
}

func TestNewBlockSizeDescriptor_PackedIndexAndModeFilter(t *testing.T) {
	// Property 7: every packed block mode satisfies x_weights<=xdim,
	// y_weights<=ydim, z_weights<=zdim, and its weight bits are in range.
	const xdim, ydim, zdim = 8, 8, 1
	b, err := NewBlockSizeDescriptor(xdim, ydim, zdim, false, 1.0)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor: %v", err)
	}

	packedSeen := 0
	for i := 0; i < MaxWeightModes; i++ {
		idx := b.BlockModePackedIndex[i]
		if idx == blockModeIndexInvalid {
			continue
		}
		packedSeen++
		bm := b.BlockModes[idx]
		if bm.ModeIndex != i {
			t.Fatalf("BlockModePackedIndex[%d] -> BlockModes[%d].ModeIndex = %d, want %d", i, idx, bm.ModeIndex, i)
		}
		dm := b.DecimationModes[bm.DecimationMode]
		if dm.Table == nil {
			t.Fatalf("mode %d: referenced decimation mode %d has a nil table", i, bm.DecimationMode)
		}
		if dm.Table.WeightX > xdim || dm.Table.WeightY > ydim {
			t.Fatalf("mode %d: weight grid (%d,%d) exceeds block (%d,%d)", i, dm.Table.WeightX, dm.Table.WeightY, xdim, ydim)
		}
		weightCount := dm.Table.WeightX * dm.Table.WeightY
		if bm.IsDualPlane {
			weightCount *= 2
		}
		bits := ISESequenceBitCount(weightCount, bm.QuantMode)
		if bits < MinWeightBitsPerBlock || bits > MaxWeightBitsPerBlock {
			t.Fatalf("mode %d: weight_bits=%d out of [%d,%d]", i, bits, MinWeightBitsPerBlock, MaxWeightBitsPerBlock)
		}
	}
	if packedSeen != len(b.BlockModes) {
		t.Fatalf("packed index count %d != len(BlockModes) %d", packedSeen, len(b.BlockModes))
	}
	if packedSeen == 0 {
		t.Fatalf("no block modes selected for 8x8")
	}
}

func TestNewBlockSizeDescriptor_RejectsOutOfRangeDimensions(t *testing.T) {
	if _, err := NewBlockSizeDescriptor(3, 4, 1, false, 1.0); err == nil {
		t.Fatalf("expected error for xdim=3")
	}
	if _, err := NewBlockSizeDescriptor(4, 4, 2, false, 1.0); err == nil {
		t.Fatalf("expected error for zdim=2")
	}
}

func TestNewBlockSizeDescriptor_3D(t *testing.T) {
	b, err := NewBlockSizeDescriptor(4, 4, 4, false, 1.0)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor: %v", err)
	}
	if b.TexelCount != 64 {
		t.Fatalf("TexelCount = %d, want 64", b.TexelCount)
	}
	if len(b.BlockModes) == 0 {
		t.Fatalf("no block modes selected for 4x4x4")
	}
	for _, bm := range b.BlockModes {
		if !bm.PercentileAlways {
			t.Fatalf("3D block mode %d: PercentileAlways = false, want true (everything selected)", bm.ModeIndex)
		}
	}
}

func TestNewBlockSizeDescriptor_Determinism(t *testing.T) {
	// S6: term then rebuild yields identical block modes and k-means texels.
	a, err := NewBlockSizeDescriptor(5, 5, 1, true, 0.3)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor (a): %v", err)
	}
	a.Free()

	b, err := NewBlockSizeDescriptor(5, 5, 1, true, 0.3)
	if err != nil {
		t.Fatalf("NewBlockSizeDescriptor (b): %v", err)
	}

	if len(a.BlockModes) != len(b.BlockModes) {
		t.Fatalf("len(BlockModes) mismatch: %d vs %d", len(a.BlockModes), len(b.BlockModes))
	}
	for i := range a.BlockModes {
		if a.BlockModes[i] != b.BlockModes[i] {
			t.Fatalf("BlockModes[%d] mismatch: %+v vs %+v", i, a.BlockModes[i], b.BlockModes[i])
		}
	}
	for i := range a.KmeansTexels {
		if a.KmeansTexels[i] != b.KmeansTexels[i] {
			t.Fatalf("KmeansTexels[%d] mismatch: %d vs %d", i, a.KmeansTexels[i], b.KmeansTexels[i])
		}
	}
}

func TestGet_MemoizesByParameters(t *testing.T) {
	a, err := Get(4, 4, 1, false, 1.0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := Get(4, 4, 1, false, 1.0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a != b {
		t.Fatalf("Get returned distinct descriptors for identical parameters")
	}

	c, err := Get(4, 4, 1, false, 0.9)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a == c {
		t.Fatalf("Get returned the same descriptor for different mode_cutoff")
	}
}
