package bsd

// QuantMethod is an ASTC integer-sequence quantization mode.
//
// The numeric values are specified by the ASTC format and must not be
// reordered. Ported from astc.quantMethod (astc/quant.go).
type QuantMethod uint8

const (
	Quant2   QuantMethod = 0
	Quant3   QuantMethod = 1
	Quant4   QuantMethod = 2
	Quant5   QuantMethod = 3
	Quant6   QuantMethod = 4
	Quant8   QuantMethod = 5
	Quant10  QuantMethod = 6
	Quant12  QuantMethod = 7
	Quant16  QuantMethod = 8
	Quant20  QuantMethod = 9
	Quant24  QuantMethod = 10
	Quant32  QuantMethod = 11
	Quant40  QuantMethod = 12
	Quant48  QuantMethod = 13
	Quant64  QuantMethod = 14
	Quant80  QuantMethod = 15
	Quant96  QuantMethod = 16
	Quant128 QuantMethod = 17
	Quant160 QuantMethod = 18
	Quant192 QuantMethod = 19
	Quant256 QuantMethod = 20
)

// iseSize gives the bit-cost-per-symbol scale factor for one quantization
// level, encoded the same way astc/ise.go encodes it: cost(n) = ceil(scale*n
// / ((divisor<<1)+1)).
type iseSize struct {
	scale   uint8
	divisor uint8
}

var iseSizes = [...]iseSize{
	{scale: 1, divisor: 0},  // Quant2
	{scale: 8, divisor: 2},  // Quant3
	{scale: 2, divisor: 0},  // Quant4
	{scale: 7, divisor: 1},  // Quant5
	{scale: 13, divisor: 2}, // Quant6
	{scale: 3, divisor: 0},  // Quant8
	{scale: 10, divisor: 1}, // Quant10
	{scale: 18, divisor: 2}, // Quant12
	{scale: 4, divisor: 0},  // Quant16
	{scale: 13, divisor: 1}, // Quant20
	{scale: 23, divisor: 2}, // Quant24
	{scale: 5, divisor: 0},  // Quant32
	{scale: 16, divisor: 1}, // Quant40
	{scale: 28, divisor: 2}, // Quant48
	{scale: 6, divisor: 0},  // Quant64
	{scale: 19, divisor: 1}, // Quant80
	{scale: 33, divisor: 2}, // Quant96
	{scale: 7, divisor: 0},  // Quant128
	{scale: 22, divisor: 1}, // Quant160
	{scale: 38, divisor: 2}, // Quant192
	{scale: 8, divisor: 0},  // Quant256
}

// ISESequenceBitCount is the bit cost of an ASTC Integer-Sequence-Encoded
// sequence of charCount values at quantization level q.
//
// This is the ise_sequence_bitcount external collaborator described by the
// component design; ported from astc.iseSequenceBitCount (astc/ise.go),
// which this package cannot import without introducing an import cycle
// (the astc package itself now delegates block-mode decoding to bsd).
func ISESequenceBitCount(charCount int, q QuantMethod) int {
	if int(q) < 0 || int(q) >= len(iseSizes) {
		return 1024
	}
	e := iseSizes[q]
	divisor := int((e.divisor << 1) + 1)
	return (int(e.scale)*charCount + divisor - 1) / divisor
}
