package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"github.com/apparentlymart/rvasm/encoder"
)

// outputExt is the extension given to every output file, replacing the
// extension of the input file it was encoded from.
const outputExt = ".txt"

type fileStats struct {
	Files   int
	Lines   int
	Encoded int
	Failed  int
}

func (s *fileStats) add(other fileStats) {
	s.Files += other.Files
	s.Lines += other.Lines
	s.Encoded += other.Encoded
	s.Failed += other.Failed
}

type translator struct {
	log *log.Logger

	// dump, if non-nil, receives a dump of each successfully-parsed
	// instruction. It may be shared by concurrent translations.
	dump io.Writer

	// flushLines makes translate flush its output after every line rather
	// than only at the end, for interactive use.
	flushLines bool
}

// translate encodes each line of r and writes the result to w as a line of
// its own, so that the output always has the same number of lines as the
// input. Lines that can't be encoded are replaced by a diagnostic comment.
func (t *translator) translate(r io.Reader, w io.Writer) (fileStats, error) {
	stats := fileStats{Files: 1}
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		// ReadString has no limit on line length, unlike bufio.Scanner,
		// so a very long line is just another line that fails to encode.
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			bw.Flush()
			return stats, readErr
		}
		if line == "" && readErr == io.EOF {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		stats.Lines++

		out, err := encoder.EncodeInstruction(line)
		switch {
		case err != nil:
			stats.Failed++
			out = diagnostic(err)
		case out != "":
			stats.Encoded++
			if t.dump != nil {
				t.dumpInstruction(line)
			}
		}

		bw.WriteString(out)
		bw.WriteByte('\n')
		if t.flushLines {
			if err := bw.Flush(); err != nil {
				return stats, err
			}
		}
		if readErr == io.EOF {
			break
		}
	}
	return stats, bw.Flush()
}

func (t *translator) dumpInstruction(line string) {
	inst, err := encoder.Parse(line)
	if err != nil || inst == nil {
		return
	}
	// A single write per instruction, so that dumps from concurrent
	// translations don't interleave.
	io.WriteString(t.dump, fmt.Sprintf("# %s\n%s", strings.TrimSpace(line), dumpConfig.Sdump(inst)))
}

// dumpConfig renders the fields of each instruction rather than its
// String method, which would only give back the assembly text.
var dumpConfig = spew.ConfigState{
	Indent:                  " ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
}

// diagnostic returns the line written in place of a line that failed to
// encode.
func diagnostic(err error) string {
	return "# error: " + err.Error()
}

func (t *translator) translateFile(inPath, outPath string) (fileStats, error) {
	r, err := os.Open(inPath)
	if err != nil {
		return fileStats{}, err
	}
	defer r.Close()

	w, err := os.Create(outPath)
	if err != nil {
		return fileStats{}, err
	}

	stats, err := t.translate(r, w)
	if err != nil {
		w.Close()
		return stats, err
	}
	return stats, w.Close()
}

// outputName returns the name of the file that the given input file is
// encoded into.
func outputName(inName, inExt string) string {
	return strings.TrimSuffix(inName, inExt) + outputExt
}

// translateDir encodes every file in inDir whose name ends with inExt,
// writing the results into outDir, which is created if necessary.
//
// A failure to read or write one file doesn't prevent the others from
// being translated. The returned error is the first such failure, if any.
func (t *translator) translateDir(ctx context.Context, inDir, outDir, inExt string, jobs int) (fileStats, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fileStats{}, fmt.Errorf("failed to read input directory: %w", err)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fileStats{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != inExt {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var mu sync.Mutex
	var total fileStats

	var g errgroup.Group
	g.SetLimit(jobs)
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			inPath := filepath.Join(inDir, name)
			outPath := filepath.Join(outDir, outputName(name, inExt))

			t.log.Printf("translating %s to %s", inPath, outPath)
			stats, err := t.translateFile(inPath, outPath)
			if err != nil {
				t.log.Printf("failed to translate %s: %s", inPath, err)
				return fmt.Errorf("failed to translate %s: %w", inPath, err)
			}
			t.log.Printf("translated %s: %d lines, %d instructions, %d errors", inPath, stats.Lines, stats.Encoded, stats.Failed)

			mu.Lock()
			total.add(stats)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()
	return total, err
}

// lockedWriter serializes writes to w.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
