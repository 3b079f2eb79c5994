// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/vgm2nsf/internal/options"
	"github.com/retroenv/vgm2nsf/internal/pipeline"
	"github.com/retroenv/vgm2nsf/internal/verification"
)

// gzip file magic bytes, .vgz files are gzip-compressed .vgm files
var gzipMagic = []byte{0x1F, 0x8B}

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	convOptions options.Conversion) error {

	data, err := LoadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("loading file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	pipe := pipeline.New(logger)
	song, err := pipe.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	file, err := pipe.Convert(song, convOptions)
	if err != nil {
		return fmt.Errorf("converting: %w", err)
	}

	if err := writeOutput(opts.Output, file.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("Wrote NSF file",
		log.String("file", opts.Output),
		log.Int("size", len(file.Bytes())))

	if opts.Verify {
		if err := verification.VerifyOutput(logger, opts.Output, song); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}

	return nil
}

// LoadFile reads a VGM file into memory, decompressing gzip-compressed
// .vgz files transparently.
func LoadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}

	if len(data) < len(gzipMagic) || data[0] != gzipMagic[0] || data[1] != gzipMagic[1] {
		return data, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer func() { _ = reader.Close() }()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing file %s: %w", name, err)
	}
	return decompressed, nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".nsf"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("vgm2nsf", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

func writeOutput(name string, data []byte) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", name, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output file %s: %w", name, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", name, err)
	}
	return nil
}
