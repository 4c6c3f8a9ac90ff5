package astc

import "github.com/astc-go/astc/bsd"

const (
	// partitionIndexBits is the width of the ASTC partition-index field;
	// used to size and mask the decode-direction partition table.
	partitionIndexBits = 10

	// blockMaxPartitions bounds decodeContext.partitionTables.
	blockMaxPartitions = 4
)

// decodeBlockMode2D decodes the properties of an encoded 2D block mode.
//
// Delegates to bsd.DecodeBlockMode2D, the canonical port of
// decode_block_mode_2d() in Source/astcenc_block_sizes.cpp.
func decodeBlockMode2D(blockMode int) (xWeights, yWeights int, isDualPlane bool, quantMode quantMethod, weightBits int, ok bool) {
	xw, yw, dual, qm, bits, valid := bsd.DecodeBlockMode2D(blockMode)
	return xw, yw, dual, quantMethod(qm), bits, valid
}

// decodeBlockMode3D decodes the properties of an encoded 3D block mode.
//
// Delegates to bsd.DecodeBlockMode3D, the canonical port of
// decode_block_mode_3d() in Source/astcenc_block_sizes.cpp.
func decodeBlockMode3D(blockMode int) (xWeights, yWeights, zWeights int, isDualPlane bool, quantMode quantMethod, weightBits int, ok bool) {
	xw, yw, zw, dual, qm, bits, valid := bsd.DecodeBlockMode3D(blockMode)
	return xw, yw, zw, dual, quantMethod(qm), bits, valid
}
