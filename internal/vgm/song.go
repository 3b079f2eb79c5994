package vgm

import (
	"fmt"
)

// Song is a parsed VGM file: the validated header, the GD3 metadata and
// the raw buffer that the command stream decoder reads from during
// conversion. The buffer is borrowed read-only from the caller.
type Song struct {
	Header   Header
	Metadata Metadata

	data []byte
}

// Parse validates the VGM header and extracts the GD3 metadata of the
// given buffer. Metadata extraction never fails, a missing or malformed
// tag degrades to empty fields.
func Parse(data []byte) (*Song, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	song := &Song{
		Header: header,
		data:   data,
	}
	if header.GD3Offset != 0 {
		// the stored offset is relative to its own header field position
		song.Metadata = ParseGD3(data, gd3Offset+int(header.GD3Offset))
	}
	return song, nil
}

// Decode runs the command stream decoder over the song data starting at
// the header's data offset.
func (s *Song) Decode(enablePCM bool) Result {
	return Decode(s.data, s.Header.DataOffset, enablePCM)
}
