// Package fileinput implements line-and-column-tracked rune reading over a
// single source file, the input side of the scanner contract.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line:column position within a named input.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col) }

// Source implements sequential rune reading over a single named stream,
// tracking the line and column of the last rune read so callers can stamp
// diagnostics and tokens with accurate positions.
type Source struct {
	name string
	rr   runeReader
	line int
	col  int
}

// Open wraps r as a Source; if r already supports rune reading, it is used
// directly, otherwise it is buffered through bufio.
func Open(name string, r io.Reader) *Source {
	return &Source{name: name, rr: newRuneReader(r), line: 1, col: 0}
}

// Name returns the source's file name, as given to Open.
func (s *Source) Name() string { return s.name }

// ReadRune reads one rune, returning its Location. Column numbering starts
// at one; a newline rolls Line forward and resets Col to zero so the rune
// immediately after it reports column one.
func (s *Source) ReadRune() (rune, Location, error) {
	r, _, err := s.rr.ReadRune()
	if err != nil {
		return 0, Location{s.name, s.line, s.col}, err
	}
	if r == '\n' {
		loc := Location{s.name, s.line, s.col + 1}
		s.line++
		s.col = 0
		return r, loc, nil
	}
	s.col++
	return r, Location{s.name, s.line, s.col}, nil
}

type runeReader interface {
	io.Reader
	io.RuneReader
}

func newRuneReader(r io.Reader) runeReader {
	if rr, ok := r.(runeReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}
