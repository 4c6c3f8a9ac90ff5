package astc

import "github.com/astc-go/astc/bsd"

// hash52 is the hash function used for procedural partition assignment.
//
// Delegates to bsd.Hash52, the canonical port of Source/astcenc_partition_tables.cpp.
func hash52(inp uint32) uint32 {
	return bsd.Hash52(inp)
}

// selectPartition selects the partition index for a single texel coordinate.
//
// Delegates to bsd.SelectPartition, the canonical port of Source/astcenc_partition_tables.cpp.
func selectPartition(seed, x, y, z, partitionCount int, smallBlock bool) uint8 {
	return bsd.SelectPartition(seed, x, y, z, partitionCount, smallBlock)
}
