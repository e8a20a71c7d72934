// Package diag implements the fatal diagnostic taxonomy of ALAN-2022:
// lexical, syntactic, semantic, and system errors, rendering to the exact
// message text the language's user contract requires. Every diagnostic is
// fatal, mirroring the teacher's Core.halt. Lexical, syntactic, and semantic
// diagnostics carry a source position and unwind the compiler via panic
// with an *Error, which parser.Parse recovers and returns as a plain error;
// system diagnostics (CannotOpenFile, SubprocessFailed) are returned as
// plain errors without a position.
package diag

import (
	"fmt"

	"github.com/alan2022/alanc/internal/token"
)

// Error is a fatal compiler diagnostic pinned to a source position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Pos, e.Message)
}

// Fatal panics with an *Error, the way the scanner and parser report a
// problem. There is no recovery path within the core; the first diagnostic
// ends compilation.
func Fatal(pos token.Position, format string, args ...interface{}) {
	panic(&Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Lexical diagnostics, messages reproduced verbatim from the spec.

func IllegalChar(pos token.Position, c byte) {
	Fatal(pos, "illegal character '%c' (ASCII #%d)", c, c)
}

func NonPrintableInString(pos token.Position, c byte) {
	Fatal(pos, "non-printable character (ASCII #%d) in string", c)
}

func IllegalEscape(pos token.Position, c byte) {
	Fatal(pos, "illegal escape code '\\%c' in string", c)
}

func StringNotClosed(pos token.Position) {
	Fatal(pos, "string not closed")
}

func CommentNotClosed(pos token.Position) {
	Fatal(pos, "comment not closed")
}

func NumberTooLarge(pos token.Position) {
	Fatal(pos, "number too large")
}

func IdentifierTooLong(pos token.Position) {
	Fatal(pos, "identifier too long")
}

// Syntactic diagnostics.

func Expected(pos token.Position, expected, found string) {
	Fatal(pos, "expected %s, but found %s", expected, found)
}

func ExpectedFactor(pos token.Position, found string) {
	Fatal(pos, "expected factor, but found %s", found)
}

func ExpectedStatement(pos token.Position, found string) {
	Fatal(pos, "expected statement, but found %s", found)
}

func ExpectedType(pos token.Position, found string) {
	Fatal(pos, "expected type, but found %s", found)
}

func ExpectedExprOrString(pos token.Position, found string) {
	Fatal(pos, "expected expression or string, but found %s", found)
}

// Semantic diagnostics.

func MultipleDefinition(pos token.Position, name string) {
	// spelling preserved verbatim from the reference source
	Fatal(pos, "multiple defenition of %s", name)
}

func UnknownIdentifier(pos token.Position, name string) {
	Fatal(pos, "unknown identifier %s", name)
}

func NotAFunction(pos token.Position, name string) {
	Fatal(pos, "%s is not a function", name)
}

func NotAProcedure(pos token.Position, name string) {
	Fatal(pos, "%s is not a procedure", name)
}

func NotAVariable(pos token.Position, name string) {
	Fatal(pos, "%s is not a variable", name)
}

func NotAnArray(pos token.Position, name string) {
	Fatal(pos, "%s is not an array", name)
}

func ScalarExpected(pos token.Position, name string) {
	Fatal(pos, "%s: scalar expected", name)
}

func TooFewArguments(pos token.Position, name string) {
	Fatal(pos, "too few arguments to %s", name)
}

func TooManyArguments(pos token.Position, name string) {
	Fatal(pos, "too many arguments to %s", name)
}

func IllegalArrayOperation(pos token.Position, name string) {
	Fatal(pos, "illegal array operation on %s", name)
}

func IncompatibleTypes(pos token.Position, context string) {
	Fatal(pos, "incompatible types in %s", context)
}

// System diagnostics.

func CannotOpenFile(path string, err error) error {
	return fmt.Errorf("cannot open %s: %w", path, err)
}

func OutOfMemory(pos token.Position) {
	Fatal(pos, "out of memory")
}

func SubprocessFailed(name string, err error) error {
	return fmt.Errorf("%s failed: %w", name, err)
}
