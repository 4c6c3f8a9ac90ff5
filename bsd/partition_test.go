package bsd

import "testing"

func TestGeneratePartitionInfoEntry_TexelCountsSumToTotal(t *testing.T) {
	// Property 5: sum of partition_texel_count[0..partition_count) == texel_count.
	const xdim, ydim, zdim = 6, 6, 1
	texelCount := xdim * ydim * zdim
	kmeansTexels := AssignKmeansTexels(texelCount)

	for pc := 1; pc <= 4; pc++ {
		for seed := 0; seed < 32; seed++ {
			pi := generatePartitionInfoEntry(xdim, ydim, zdim, pc, seed, kmeansTexels)
			if pi.PartitionCount == 0 {
				continue
			}
			sum := 0
			for p := 0; p < int(pi.PartitionCount); p++ {
				sum += pi.PartitionTexelCount[p]
			}
			if sum != texelCount {
				t.Fatalf("pc=%d seed=%d: texel counts sum to %d, want %d", pc, seed, sum, texelCount)
			}
		}
	}
}

func TestGeneratePartitionInfoEntry_CanonicalOrdering(t *testing.T) {
	// Property 4: the lowest-indexed texel in partition p appears strictly
	// earlier than the lowest-indexed texel in partition p+1.
	const xdim, ydim, zdim = 6, 6, 1
	texelCount := xdim * ydim * zdim
	kmeansTexels := AssignKmeansTexels(texelCount)

	for pc := 2; pc <= 4; pc++ {
		for seed := 0; seed < 32; seed++ {
			pi := generatePartitionInfoEntry(xdim, ydim, zdim, pc, seed, kmeansTexels)
			if pi.PartitionCount == 0 {
				continue
			}
			firstOf := make([]int, pi.PartitionCount)
			for p := range firstOf {
				firstOf[p] = -1
			}
			for t := 0; t < texelCount; t++ {
				p := pi.PartitionOfTexel[t]
				if firstOf[p] == -1 {
					firstOf[p] = t
				}
			}
			for p := 1; p < int(pi.PartitionCount); p++ {
				if firstOf[p] <= firstOf[p-1] {
					t.Fatalf("pc=%d seed=%d: partition %d's first texel %d is not after partition %d's first texel %d",
						pc, seed, p, firstOf[p], p-1, firstOf[p-1])
				}
			}
		}
	}
}

func TestBuildPartitionTables_Layout(t *testing.T) {
	const xdim, ydim, zdim = 4, 4, 1
	kmeansTexels := AssignKmeansTexels(xdim * ydim * zdim)
	table := buildPartitionTables(xdim, ydim, zdim, kmeansTexels)

	if len(table) != 3*PartitionCount+1 {
		t.Fatalf("len(table) = %d, want %d", len(table), 3*PartitionCount+1)
	}

	single := table[3*PartitionCount]
	if single.PartitionCount != 1 {
		t.Fatalf("single entry PartitionCount = %d, want 1", single.PartitionCount)
	}
	// S1: partition_count=1 info has partition_texel_count = [16,0,0,0].
	want := [MaxPartitions]int{16, 0, 0, 0}
	if single.PartitionTexelCount != want {
		t.Fatalf("single entry PartitionTexelCount = %v, want %v", single.PartitionTexelCount, want)
	}
}

func TestRemoveDuplicatePartitionings_SomeCollisionsAtSmallBlockSize(t *testing.T) {
	// S5: >0 entries in the 2-partition table of a 4x4 block have
	// partition_count=0 (some hash collisions always occur).
	const xdim, ydim, zdim = 4, 4, 1
	kmeansTexels := AssignKmeansTexels(xdim * ydim * zdim)
	table := make([]PartitionInfo, PartitionCount)
	for i := range table {
		table[i] = generatePartitionInfoEntry(xdim, ydim, zdim, 2, i, kmeansTexels)
	}
	removeDuplicatePartitionings(xdim*ydim*zdim, table)

	invalid := 0
	for _, pi := range table {
		if pi.PartitionCount == 0 {
			invalid++
		}
	}
	if invalid == 0 {
		t.Fatalf("expected at least one duplicate partitioning at 4x4, got none")
	}
}

func TestRemoveDuplicatePartitionings_NoDuplicateFingerprintsSurvive(t *testing.T) {
	// Property 6: no two valid partition infos share a canonical fingerprint.
	const xdim, ydim, zdim = 6, 6, 1
	texelCount := xdim * ydim * zdim
	kmeansTexels := AssignKmeansTexels(texelCount)
	table := make([]PartitionInfo, PartitionCount)
	for i := range table {
		table[i] = generatePartitionInfoEntry(xdim, ydim, zdim, 3, i, kmeansTexels)
	}
	removeDuplicatePartitionings(texelCount, table)

	seen := make(map[[7]uint64]bool)
	for _, pi := range table {
		if pi.PartitionCount == 0 {
			continue
		}
		fp := canonicalFingerprint(texelCount, pi.PartitionOfTexel)
		if seen[fp] {
			t.Fatalf("duplicate canonical fingerprint survived dedup: %v", fp)
		}
		seen[fp] = true
	}
}
