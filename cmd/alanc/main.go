// Command alanc compiles a single ALAN-2022 source file to a Jasmin-dialect
// assembly listing and, unless -no-assemble is given, invokes the external
// Jasmin assembler (located via the JASMIN_JAR environment variable) to turn
// that listing into a JVM class file.
package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"regexp"

	"github.com/alan2022/alanc/internal/compiler"
	"github.com/alan2022/alanc/internal/logio"
	"github.com/alan2022/alanc/internal/panicerr"
)

func main() {
	var (
		noAssemble bool
		keepJasmin bool
		trace      bool
		debug      bool
	)
	flag.BoolVar(&noAssemble, "no-assemble", false, "only emit the .jasmin listing, skip invoking the assembler")
	flag.BoolVar(&keepJasmin, "keep-jasmin", false, "keep the .jasmin listing after a successful assemble")
	flag.BoolVar(&trace, "trace", false, "enable trace logging of the pipeline stages")
	flag.BoolVar(&debug, "debug", false, "on an internal panic, print the recovered goroutine stack trace")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	if flag.NArg() != 1 {
		log.Errorf("usage: alanc <filename>")
		return
	}

	d := &compiler.Driver{
		JasminJar:  os.Getenv("JASMIN_JAR"),
		NoAssemble: noAssemble,
		KeepJasmin: keepJasmin,
	}
	if trace {
		d.Trace = &log
		log.Wrap(collapseScanTrace)
		defer log.Unwrap()
	}

	if err := d.Run(context.Background(), flag.Arg(0)); err != nil {
		log.Errorf("alanc: %s: %v", flag.Arg(0), err)
		if debug && panicerr.IsPanic(err) {
			log.Printf("debug", "%s", panicerr.PanicStack(err))
		}
	}
}

// scanTracePattern matches one "trace: scan <pos> ..." line emitted per
// token consumed by the parser (see parser.WithTrace), capturing its source
// position.
var scanTracePattern = regexp.MustCompile(`^trace: scan (\S+) `)

// collapseScanTrace wraps a log output stream, collapsing consecutive
// per-token "scan" trace lines that share the same source position down to
// the first of the run, the same way gothird's main.go locScanner collapses
// repetitive per-address trace lines by source location.
func collapseScanTrace(wc io.WriteCloser) io.WriteCloser {
	return &scanCollapser{out: wc}
}

type scanCollapser struct {
	out     io.WriteCloser
	lastLoc string
	buf     bytes.Buffer
}

func (c *scanCollapser) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		i := bytes.IndexByte(c.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := c.buf.Next(i + 1)
		if m := scanTracePattern.FindSubmatch(line); m != nil {
			loc := string(m[1])
			if loc == c.lastLoc {
				continue
			}
			c.lastLoc = loc
		}
		if _, err := c.out.Write(line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

func (c *scanCollapser) Close() error {
	if c.buf.Len() > 0 {
		if _, err := c.out.Write(c.buf.Bytes()); err != nil {
			c.out.Close()
			return err
		}
	}
	return c.out.Close()
}
