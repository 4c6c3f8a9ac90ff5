package bsd

// PartitionInfo describes one (partition_count, seed) texel→partition
// assignment, canonicalised and deduplicated against every earlier seed of
// the same partition count.
type PartitionInfo struct {
	// PartitionCount is the number of active partitions, or 0 if this entry
	// was rejected as a duplicate of an earlier seed.
	PartitionCount int

	// PartitionOfTexel maps texel index (linear, x-fastest) to partition
	// index 0..3.
	PartitionOfTexel []uint8

	// TexelsOfPartition[p] lists, in ascending order, the texel indices that
	// belong to partition p, padded to a SIMD-width multiple by repeating
	// the last valid entry.
	TexelsOfPartition [MaxPartitions][]uint8

	// PartitionTexelCount[p] is the number of texels genuinely in
	// partition p, i.e. the unpadded length of TexelsOfPartition[p].
	PartitionTexelCount [MaxPartitions]int

	// CoverageBitmaps[p] has bit i set if the i-th k-means representative
	// texel of the owning descriptor falls in partition p.
	CoverageBitmaps [MaxPartitions]uint64
}

// canonicalFingerprint builds the 7-word, 2-bit-per-texel canonical
// representation described by §4.3: partitions are relabelled in order of
// first appearance so that structurally identical partitionings compare
// equal regardless of which raw partition index the hash happened to
// assign first.
//
// Ported from generate_canonical_partitioning (astcenc_partition_tables.cpp).
func canonicalFingerprint(texelCount int, partitionOfTexel []uint8) (bitPattern [7]uint64) {
	var mappedIndex [MaxPartitions]int
	for i := range mappedIndex {
		mappedIndex[i] = -1
	}

	nextIndex := 0
	for i := 0; i < texelCount; i++ {
		index := partitionOfTexel[i]
		if mappedIndex[index] == -1 {
			mappedIndex[index] = nextIndex
			nextIndex++
		}
		xlat := uint64(mappedIndex[index])
		bitPattern[i>>5] |= xlat << uint(2*(i&0x1F))
	}
	return bitPattern
}

func fingerprintsEqual(a, b [7]uint64) bool {
	return a == b
}

// removeDuplicatePartitionings marks every entry in table whose canonical
// fingerprint matches an earlier entry's as invalid (PartitionCount = 0).
// The partition_count == 1 entry is never part of this table and is never
// deduplicated.
//
// Ported from remove_duplicate_partitionings (astcenc_partition_tables.cpp).
func removeDuplicatePartitionings(texelCount int, table []PartitionInfo) {
	fingerprints := make([][7]uint64, len(table))
	for i := range table {
		fingerprints[i] = canonicalFingerprint(texelCount, table[i].PartitionOfTexel)
	}

	for i := range table {
		for j := 0; j < i; j++ {
			if fingerprintsEqual(fingerprints[i], fingerprints[j]) {
				table[i].PartitionCount = partitionCountInvalid
				break
			}
		}
	}
}

// generatePartitionInfoEntry assigns every texel in an (xdim,ydim,zdim)
// block to a partition using SelectPartition, relabels the partitions in
// order of first texel appearance, pads each per-partition texel
// list to a SIMD-width multiple, and records k-means coverage bitmaps
// against the already-assigned kmeansTexels subset.
//
// Ported from generate_one_partition_info_entry (astcenc_partition_tables.cpp).
func generatePartitionInfoEntry(xdim, ydim, zdim, partitionCount, partitionIndex int, kmeansTexels []int) PartitionInfo {
	texelCount := xdim * ydim * zdim
	smallBlock := texelCount < 32

	var pi PartitionInfo
	pi.PartitionOfTexel = make([]uint8, texelCount)

	var counts [MaxPartitions]int
	var rawTexels [MaxPartitions][]uint8

	// Relabel raw partition indices in order of first appearance so the
	// entry is canonical and its non-empty partitions are 0..n-1.
	var mapped [MaxPartitions]int
	for i := range mapped {
		mapped[i] = -1
	}
	nextIndex := 0

	texelIdx := 0
	for z := 0; z < zdim; z++ {
		for y := 0; y < ydim; y++ {
			for x := 0; x < xdim; x++ {
				raw := SelectPartition(partitionIndex, x, y, z, partitionCount, smallBlock)
				if mapped[raw] == -1 {
					mapped[raw] = nextIndex
					nextIndex++
				}
				part := uint8(mapped[raw])
				rawTexels[part] = append(rawTexels[part], uint8(texelIdx))
				pi.PartitionOfTexel[texelIdx] = part
				counts[part]++
				texelIdx++
			}
		}
	}

	for p := 0; p < partitionCount; p++ {
		padded := roundUpToSIMDMultiple(counts[p])
		list := make([]uint8, padded)
		copy(list, rawTexels[p])
		if counts[p] > 0 {
			last := rawTexels[p][counts[p]-1]
			for j := counts[p]; j < padded; j++ {
				list[j] = last
			}
		}
		pi.TexelsOfPartition[p] = list
	}

	switch {
	case counts[0] == 0:
		pi.PartitionCount = partitionCountInvalid
	case counts[1] == 0:
		pi.PartitionCount = 1
	case counts[2] == 0:
		pi.PartitionCount = 2
	case counts[3] == 0:
		pi.PartitionCount = 3
	default:
		pi.PartitionCount = 4
	}

	for p := 0; p < MaxPartitions; p++ {
		pi.PartitionTexelCount[p] = counts[p]
	}

	for i, idx := range kmeansTexels {
		pi.CoverageBitmaps[pi.PartitionOfTexel[idx]] |= 1 << uint(i)
	}

	return pi
}

// buildPartitionTables builds the full {2,3,4,1}-partition-count table for
// one block footprint, deduplicating each of the three multi-partition
// count buckets independently.
//
// Ported from init_partition_tables (astcenc_partition_tables.cpp). The
// order matches §3: 2-seeds, then 3-seeds, then 4-seeds, then the single
// partition_count=1 entry.
func buildPartitionTables(xdim, ydim, zdim int, kmeansTexels []int) []PartitionInfo {
	table := make([]PartitionInfo, 3*PartitionCount+1)
	tab2 := table[0:PartitionCount]
	tab3 := table[PartitionCount : 2*PartitionCount]
	tab4 := table[2*PartitionCount : 3*PartitionCount]

	for i := 0; i < PartitionCount; i++ {
		tab2[i] = generatePartitionInfoEntry(xdim, ydim, zdim, 2, i, kmeansTexels)
		tab3[i] = generatePartitionInfoEntry(xdim, ydim, zdim, 3, i, kmeansTexels)
		tab4[i] = generatePartitionInfoEntry(xdim, ydim, zdim, 4, i, kmeansTexels)
	}

	removeDuplicatePartitionings(xdim*ydim*zdim, tab2)
	removeDuplicatePartitionings(xdim*ydim*zdim, tab3)
	removeDuplicatePartitionings(xdim*ydim*zdim, tab4)

	table[3*PartitionCount] = generatePartitionInfoEntry(xdim, ydim, zdim, 1, 0, kmeansTexels)

	return table
}
