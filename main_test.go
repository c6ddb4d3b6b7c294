package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMissingInputDir(t *testing.T) {
	inDir := filepath.Join(t.TempDir(), "missing")
	outDir := filepath.Join(t.TempDir(), "out")

	assert.Equal(t, 1, run([]string{"-in", inDir, "-out", outDir, "-quiet"}))
	assert.NoDirExists(t, outDir)
}

func TestRunExitStatus(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "ok.asm"), []byte("add x1, x2, x3\n"), 0o644))

	assert.Equal(t, 0, run([]string{"-in", inDir, "-out", outDir, "-quiet"}))
	assert.FileExists(t, filepath.Join(outDir, "ok.txt"))

	require.NoError(t, os.WriteFile(filepath.Join(inDir, "bad.asm"), []byte("nope\n"), 0o644))
	assert.Equal(t, 1, run([]string{"-in", inDir, "-out", outDir, "-quiet"}))
	assert.FileExists(t, filepath.Join(outDir, "bad.txt"))

	assert.Equal(t, 2, run([]string{"-jobs", "0"}))
}
