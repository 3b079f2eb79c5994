// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/vgm2nsf/internal/options"
)

// disableFlags holds the inverse flags for default-enabled conversion features.
type disableFlags struct {
	noNoise bool
	noPCM   bool
	noLoops bool
}

// ParseFlags parses command line flags and returns program and conversion options
func ParseFlags() (options.Program, options.Conversion, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	convOptions := options.NewConversion()
	var disable disableFlags
	readOptionFlags(flags, &opts, &convOptions, &disable)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Conversion{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Conversion{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	// apply inverse logic for the default-enabled conversion features
	convOptions.PreserveNoiseChannel = !disable.noNoise
	convOptions.EnablePCM = !disable.noPCM
	convOptions.DetectLoops = !disable.noLoops
	convOptions.Normalize()

	return opts, convOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: vgm2nsf [options] <file to convert>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to convert, please pass the file to convert as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program,
	convOptions *options.Conversion, disable *disableFlags) {

	flags.StringVar(&opts.Output, "o", "", "name of the output .nsf file, derived from the input name if not given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask with automatic .nsf file naming, for example *.vgm")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the generated output by re-reading the emitted NSF file")

	flags.BoolVar(&disable.noNoise, "nonoise", false, "do not translate the noise channel")
	flags.BoolVar(&disable.noPCM, "nopcm", false, "do not extract and delta-encode PCM data blocks")
	flags.BoolVar(&disable.noLoops, "noloops", false, "do not run loop point detection")
	flags.Float64Var(&convOptions.LoopThreshold, "loopthreshold", options.DefaultLoopThreshold,
		"loop detection correlation threshold, clamped to [0.5, 1.0]")
}
