package compiler_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan2022/alanc/internal/compiler"
	"github.com/alan2022/alanc/internal/logio"
)

type nopWriteCloser struct{ *bytes.Buffer }

func (nopWriteCloser) Close() error { return nil }

func compileNoAssemble(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "t.alan")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	d := &compiler.Driver{NoAssemble: true, KeepJasmin: true}
	require.NoError(t, d.Run(context.Background(), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".jasmin" {
			b, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatal("no .jasmin listing written")
	return ""
}

func TestDriverEmitsEmptyProgramListing(t *testing.T) {
	out := compileNoAssemble(t, `source E begin relax end`)
	assert.Contains(t, out, ".class public E")
	assert.Contains(t, out, "main([Ljava/lang/String;)V")
	assert.Contains(t, out, "\treturn\n")
}

func TestDriverRejectsMissingJasminJar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.alan")
	require.NoError(t, os.WriteFile(path, []byte(`source E begin relax end`), 0o644))

	d := &compiler.Driver{}
	err := d.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JASMIN_JAR")
}

func TestDriverNoAssembleLeavesJasminOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.alan")
	require.NoError(t, os.WriteFile(path, []byte(`source E begin relax end`), 0o644))

	d := &compiler.Driver{NoAssemble: true}
	require.NoError(t, d.Run(context.Background(), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".jasmin" {
			found = true
		}
	}
	assert.True(t, found, "NoAssemble must leave the .jasmin listing on disk")
}

func TestDriverTraceReportsScanAndListingLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.alan")
	require.NoError(t, os.WriteFile(path, []byte(`source E begin relax end`), 0o644))

	var buf bytes.Buffer
	log := logio.Logger{}
	log.SetOutput(nopWriteCloser{&buf})

	d := &compiler.Driver{NoAssemble: true, Trace: &log}
	require.NoError(t, d.Run(context.Background(), path))

	out := buf.String()
	assert.Contains(t, out, "trace: scan ", "setting Driver.Trace should report a line per token the parser consumes")
	assert.Contains(t, out, "listing: .class public E", "writeJasmin should tee the serialized listing into the trace log under Driver.Trace")
}

func TestDriverReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.alan")
	require.NoError(t, os.WriteFile(path, []byte(`source D begin integer x; integer x; relax end`), 0o644))

	d := &compiler.Driver{NoAssemble: true}
	err := d.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple defenition of x")
}
