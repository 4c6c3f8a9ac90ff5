// Package astc holds the decode-direction block-geometry caches that sit
// downstream of package bsd: a decodeContext's per-block-size weight-mode
// table, partition table, and decimation table, all sourced from bsd's
// bit-exact hash, block-mode decoder, and decimation-table builders rather
// than recomputing that math inline.
package astc
