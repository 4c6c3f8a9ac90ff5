package bsd

// PercentileProvider supplies the pre-measured per-block-mode utility
// heuristic for a 2D block footprint, scaled to [0,1] (lower is better). It
// is consumed only during 2D descriptor assembly (§4.9); 3D assembly selects
// every candidate block mode unconditionally.
//
// This is the get_2d_percentile_table external collaborator (§6). Supplying
// one is optional: PercentileTable defaults to a table of all zeros, under
// which every block mode is both "hit" and "always" selected regardless of
// mode_cutoff.
type PercentileProvider func(xdim, ydim int) [MaxWeightModes]float32

// PercentileTable is the percentile heuristic provider used by
// NewBlockSizeDescriptor and Get. Replace it (e.g. in an init function) to
// supply a real measured table; the zero-value default never omits a mode.
var PercentileTable PercentileProvider = defaultPercentileTable

func defaultPercentileTable(xdim, ydim int) [MaxWeightModes]float32 {
	var t [MaxWeightModes]float32
	return t
}
