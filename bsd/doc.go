// Package bsd precomputes the ASTC block-size descriptor: the partition
// tables, block-mode decode tables, and decimation tables that the encoder
// and decoder consult on every block.
//
// Everything here is a pure function of (xdim, ydim, zdim, canOmitModes,
// modeCutoff); construction is deterministic and produces no observable
// side effects beyond the returned BlockSizeDescriptor.
package bsd
