package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig([]string{"-in", "src", "-out", "build", "-jobs", "3", "-ext", ".s", "-dump", "-quiet"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, config{
		InputDir:  "src",
		OutputDir: "build",
		InputExt:  ".s",
		Jobs:      3,
		Dump:      true,
		Quiet:     true,
	}, *cfg)
	assert.False(t, cfg.streaming())
}

func TestLoadConfigStreaming(t *testing.T) {
	cfg, err := loadConfig([]string{"-in", "-"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.streaming())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := [][]string{
		{"-jobs", "0"},
		{"-ext", "asm"},
		{"-ext", ""},
		{"extra"},
		{"-nope"},
	}
	for _, args := range tests {
		_, err := loadConfig(args, io.Discard)
		assert.Error(t, err, "%q", args)
	}

	_, err := loadConfig([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
