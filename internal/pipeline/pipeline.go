// Package pipeline orchestrates the conversion workflow stages.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/vgm2nsf/internal/looper"
	"github.com/retroenv/vgm2nsf/internal/nsf"
	"github.com/retroenv/vgm2nsf/internal/options"
	"github.com/retroenv/vgm2nsf/internal/translate"
	"github.com/retroenv/vgm2nsf/internal/vgm"
)

// Pipeline orchestrates the complete conversion workflow. Each call owns
// its own intermediate artifacts, concurrent conversions need no locking.
type Pipeline struct {
	logger *log.Logger
}

// New creates a new conversion pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
	}
}

// Parse validates the VGM header and extracts the GD3 metadata from the
// raw file buffer. Metadata failures degrade to empty fields and are
// logged, only a signature mismatch or a truncated header fail.
func (p *Pipeline) Parse(data []byte) (*vgm.Song, error) {
	song, err := vgm.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing VGM file: %w", err)
	}

	if song.Header.GD3Offset != 0 && song.Metadata == (vgm.Metadata{}) {
		p.logger.Warn("GD3 metadata unavailable, using fallback strings")
	}

	p.logger.Debug("Parsed VGM file",
		log.String("track", song.Metadata.TrackName),
		log.Hex("version", song.Header.Version),
		log.Int("total_samples", int(song.Header.TotalSamples)),
		log.Int("data_offset", song.Header.DataOffset))

	return song, nil
}

// Convert runs the decode, translate, loop detection and assembly stages
// over a parsed song. Decoder anomalies are absorbed and logged as
// diagnostics, a best-effort NSF file is produced even for streams that
// end early.
func (p *Pipeline) Convert(song *vgm.Song, opts options.Conversion) (*nsf.File, error) {
	if song == nil {
		return nil, errors.New("no parsed song given")
	}
	opts.Normalize()

	result := song.Decode(opts.EnablePCM)
	if !result.Complete {
		p.logger.Warn("Command stream ended without end marker, converting partial stream",
			log.Int("events", len(result.Events)))
	}
	if result.SkippedBytes > 0 {
		p.logger.Debug("Skipped unrecognized opcode bytes",
			log.Int("count", result.SkippedBytes))
	}
	if result.FMWrites > 0 {
		p.logger.Info("YM2413 FM writes are not translated",
			log.Int("count", result.FMWrites))
	}

	tracks := translate.Translate(result.Events, opts.PreserveNoiseChannel)
	if len(tracks.Unmapped) > 0 {
		p.logger.Info("Register writes without NES channel mapping",
			log.Int("count", len(tracks.Unmapped)))
	}

	if opts.DetectLoops {
		if point, ok := looper.Detect(tracks.AmplitudeSequence(), opts.LoopThreshold); ok {
			tracks.LoopPoint = &point
			p.logger.Debug("Detected loop point",
				log.Int("offset", point.Offset),
				log.Int("matches", point.Matches))
		}
	}

	if tracks.TotalSamples == 0 {
		tracks.TotalSamples = song.Header.TotalSamples
	}

	return nsf.Assemble(tracks, song.Metadata), nil
}
