// Package dpcm implements a 1-bit-per-sample delta encoding of PCM data.
package dpcm

// samples encoded per output byte
const chunkSize = 8

// Encode delta-encodes raw 8 bit PCM samples into 1 bit per sample,
// MSB first. A set bit records that the sample differs from its
// predecessor, the direction and magnitude of the change are discarded.
// The previous-sample state is carried across the whole block, the
// output holds one byte per chunk of 8 input samples with the last
// byte zero-padded.
func Encode(pcm []byte) []byte {
	if len(pcm) == 0 {
		return nil
	}

	out := make([]byte, (len(pcm)+chunkSize-1)/chunkSize)
	previous := pcm[0]

	for i, sample := range pcm {
		if sample != previous {
			out[i/chunkSize] |= 1 << (chunkSize - 1 - i%chunkSize)
		}
		previous = sample
	}
	return out
}
