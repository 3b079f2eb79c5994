// Package verification verifies that the generated output file is a well-formed NSF file.
package verification

import (
	"bytes"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/vgm2nsf/internal/nsf"
	"github.com/retroenv/vgm2nsf/internal/vgm"
)

// VerifyOutput re-reads the emitted NSF file and validates the fixed
// header fields and the presence of the track payload.
func VerifyOutput(logger *log.Logger, outputFile string, song *vgm.Song) error {
	data, err := os.ReadFile(outputFile)
	if err != nil {
		return fmt.Errorf("reading output file for verification: %w", err)
	}

	if len(data) <= nsf.HeaderSize {
		return fmt.Errorf("output file too short, %d bytes", len(data))
	}
	if !bytes.Equal(data[:len(nsf.Signature)], nsf.Signature) {
		return fmt.Errorf("output signature mismatch, got % x", data[:len(nsf.Signature)])
	}

	if err := checkMetadataField(data, 0x0E, song.Metadata.TrackName); err != nil {
		return fmt.Errorf("track name field: %w", err)
	}
	if err := checkMetadataField(data, 0x2E, song.Metadata.Author); err != nil {
		return fmt.Errorf("artist field: %w", err)
	}

	logger.Debug("Verified NSF output",
		log.Int("header_bytes", nsf.HeaderSize),
		log.Int("payload_bytes", len(data)-nsf.HeaderSize))
	return nil
}

// checkMetadataField verifies that a 32 byte header string field starts
// with the truncated source metadata string. Empty source strings are
// replaced by fallback literals during assembly and are not checked.
func checkMetadataField(data []byte, offset int, value string) error {
	if value == "" {
		return nil
	}
	if len(value) > 32 {
		value = value[:32]
	}
	field := data[offset : offset+32]
	if !bytes.HasPrefix(field, []byte(value)) {
		return fmt.Errorf("expected %q, got %q", value, field)
	}
	return nil
}
