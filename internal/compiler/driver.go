// Package compiler wires the scanner, symbol table, code emitter, and
// parser into the single end-to-end "compile one source file" operation,
// then optionally hands the emitted Jasmin-dialect listing to an external
// assembler process.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/emitter"
	"github.com/alan2022/alanc/internal/fileinput"
	"github.com/alan2022/alanc/internal/flushio"
	"github.com/alan2022/alanc/internal/lexer"
	"github.com/alan2022/alanc/internal/logio"
	"github.com/alan2022/alanc/internal/panicerr"
	"github.com/alan2022/alanc/internal/parser"
	"github.com/alan2022/alanc/internal/symtab"
)

// Driver runs the whole alanc pipeline for one source file.
type Driver struct {
	// JasminJar is the path to the Jasmin assembler jar, invoked as
	// `java -jar JasminJar <listing>.jasmin`. Required unless NoAssemble.
	JasminJar string

	// NoAssemble skips invoking the external assembler, leaving just the
	// emitted .jasmin listing on disk.
	NoAssemble bool

	// KeepJasmin keeps the .jasmin listing after a successful assemble; by
	// default it is removed once the assembler has consumed it.
	KeepJasmin bool

	// Trace, if non-nil, receives a line per pipeline stage transition.
	Trace *logio.Logger
}

// Run compiles the single ALAN-2022 source file at path, writing
// <classname>.jasmin next to it (classname taken from the source's "source"
// header) and, unless NoAssemble, assembling it to a .class file.
func (d *Driver) Run(ctx context.Context, path string) error {
	return panicerr.Recover("compile", func() error {
		return d.run(ctx, path)
	})
}

func (d *Driver) run(ctx context.Context, path string) error {
	if !d.NoAssemble && d.JasminJar == "" {
		return fmt.Errorf("JASMIN_JAR not set")
	}

	d.trace("opening %s", path)
	f, err := os.Open(path)
	if err != nil {
		return diag.CannotOpenFile(path, err)
	}
	defer f.Close()

	src := fileinput.Open(filepath.Base(path), f)
	lex := lexer.New(src)
	tab := symtab.New()
	defer tab.Release()
	em := emitter.New("")

	d.trace("parsing")
	if err := parser.Parse(lex, tab, em, parser.WithTrace(d.trace)); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	jasminPath := filepath.Join(dir, em.ClassName+".jasmin")
	d.trace("writing %s", jasminPath)
	if err := d.writeJasmin(jasminPath, em); err != nil {
		return err
	}

	if d.NoAssemble {
		return nil
	}
	if err := d.assemble(ctx, dir, jasminPath); err != nil {
		return err
	}
	if !d.KeepJasmin {
		os.Remove(jasminPath)
	}
	return nil
}

// writeJasmin serializes the listing through a flushio.WriteFlusher so the
// buffered write is flushed before the file is closed and handed to the
// external assembler. When tracing is on, the listing is also teed into the
// trace log under the "listing" level, the way the teacher's main.go tees
// the VM dump through a logio.Writer built from log.Leveledf("DUMP").
func (d *Driver) writeJasmin(path string, em *emitter.Emitter) error {
	f, err := os.Create(path)
	if err != nil {
		return diag.CannotOpenFile(path, err)
	}
	defer f.Close()

	out := flushio.NewWriteFlusher(f)
	if d.Trace != nil {
		lw := &logio.Writer{Logf: d.Trace.Leveledf("listing")}
		defer lw.Close()
		out = flushio.WriteFlushers(out, traceFlusher{lw})
	}
	if err := em.Serialize(out); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// traceFlusher adapts a logio.Writer (which flushes its trailing partial
// line on Close, not Flush) into a flushio.WriteFlusher.
type traceFlusher struct{ w *logio.Writer }

func (tf traceFlusher) Write(p []byte) (int, error) { return tf.w.Write(p) }
func (tf traceFlusher) Flush() error                { return tf.w.Sync() }

// assemble invokes the external Jasmin assembler, draining its combined
// stdout/stderr into the trace logger while waiting on the process. The
// drain and the wait are joined under one errgroup.Group: the group's
// derived context is what the subprocess itself runs under, so a drain
// failure (a broken pipe, say) cancels that context and kills a still-running
// assembler instead of leaving Wait to hang on it, and the two steps'
// errors are combined rather than one silently shadowing the other.
func (d *Driver) assemble(ctx context.Context, dir, jasminPath string) error {
	if d.JasminJar == "" {
		return fmt.Errorf("JASMIN_JAR not set")
	}
	g, gctx := errgroup.WithContext(ctx)
	cmd := exec.CommandContext(gctx, "java", "-jar", d.JasminJar, filepath.Base(jasminPath))
	cmd.Dir = dir
	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return diag.SubprocessFailed("jasmin", err)
	}
	cmd.Stderr = cmd.Stdout

	// g.Wait cancels gctx when it returns, so a clean run must be waited on
	// inside the group, before that cancellation can kill the process.
	started := make(chan struct{})
	var waitErr error
	g.Go(func() error {
		if err := d.drain(pipe); err != nil {
			return err
		}
		<-started
		waitErr = cmd.Wait()
		return nil
	})

	if err := cmd.Start(); err != nil {
		return diag.SubprocessFailed("jasmin", err)
	}
	close(started)
	drainErr := g.Wait()
	if drainErr != nil {
		waitErr = cmd.Wait()
	}
	if err := errors.Join(drainErr, waitErr); err != nil {
		return diag.SubprocessFailed("jasmin", err)
	}
	return nil
}

func (d *Driver) drain(r io.Reader) error {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range strings.Split(strings.TrimRight(string(buf[:n]), "\n"), "\n") {
				if line != "" {
					d.trace("jasmin: %s", line)
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (d *Driver) trace(format string, args ...interface{}) {
	if d.Trace != nil {
		d.Trace.Printf("trace", format, args...)
	}
}
