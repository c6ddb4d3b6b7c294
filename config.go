package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/xyproto/env/v2"
)

// stdinPath is the input directory name that selects stream mode.
const stdinPath = "-"

type config struct {
	InputDir  string
	OutputDir string
	InputExt  string
	Jobs      int
	Dump      bool
	Quiet     bool
}

// loadConfig parses command line arguments, taking the default for each
// setting from its environment variable.
func loadConfig(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("rvasm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: rvasm [flags]\n\n")
		fmt.Fprintf(fs.Output(), "Encodes each file in the input directory into a file of the same name\n")
		fmt.Fprintf(fs.Output(), "in the output directory, one 32-bit binary word per line.\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.InputDir, "in", env.Str("RVASM_INPUT_DIR", "asm"), "directory of assembly files to encode, or - for stdin")
	fs.StringVar(&cfg.OutputDir, "out", env.Str("RVASM_OUTPUT_DIR", "bin"), "directory to write encoded files into")
	fs.StringVar(&cfg.InputExt, "ext", env.Str("RVASM_INPUT_EXT", ".asm"), "extension of the files to encode")
	fs.IntVar(&cfg.Jobs, "jobs", env.Int("RVASM_JOBS", runtime.NumCPU()), "number of files to encode concurrently")
	fs.BoolVar(&cfg.Dump, "dump", env.Bool("RVASM_DUMP"), "dump each parsed instruction to stderr")
	fs.BoolVar(&cfg.Quiet, "quiet", env.Bool("RVASM_QUIET"), "don't log progress")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.Jobs < 1 {
		return nil, fmt.Errorf("-jobs must be at least 1, but got %d", cfg.Jobs)
	}
	if cfg.InputExt == "" || !strings.HasPrefix(cfg.InputExt, ".") {
		return nil, fmt.Errorf("-ext must start with a dot, but got %q", cfg.InputExt)
	}
	return cfg, nil
}

func (cfg *config) streaming() bool {
	return cfg.InputDir == stdinPath
}
