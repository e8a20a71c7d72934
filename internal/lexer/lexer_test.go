package lexer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan2022/alanc/internal/diag"
	"github.com/alan2022/alanc/internal/fileinput"
	"github.com/alan2022/alanc/internal/lexer"
	"github.com/alan2022/alanc/internal/token"
)

func tokenize(t *testing.T, src string) (toks []token.Token, fatal *diag.Error) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*diag.Error); ok {
				fatal = e
				return
			}
			panic(r)
		}
	}()
	l := lexer.New(fileinput.Open("test", strings.NewReader(src)))
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

func TestAllKeywordsTokenizeDistinctly(t *testing.T) {
	var src strings.Builder
	for _, kw := range token.Keywords {
		src.WriteString(kw.Word)
		src.WriteString(" ")
	}
	toks, fatal := tokenize(t, src.String())
	require.Nil(t, fatal)
	require.Len(t, toks, len(token.Keywords)+1) // + EOF
	seen := map[token.Kind]bool{}
	for i, kw := range token.Keywords {
		assert.Equal(t, kw.Kind, toks[i].Kind)
		seen[kw.Kind] = true
	}
	assert.Len(t, seen, 25)
}

func TestRelationalOperatorsTokenizeDistinctly(t *testing.T) {
	toks, fatal := tokenize(t, "< <= <> > >= =")
	require.Nil(t, fatal)
	kinds := []token.Kind{token.Lt, token.Le, token.Ne, token.Gt, token.Ge, token.Eq, token.EOF}
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestGetsTokenizesAsAssignment(t *testing.T) {
	toks, fatal := tokenize(t, ":=")
	require.Nil(t, fatal)
	require.Equal(t, token.Gets, toks[0].Kind)
}

func TestStrayColonIsIllegalCharacter(t *testing.T) {
	_, fatal := tokenize(t, ": x")
	require.NotNil(t, fatal)
	assert.Equal(t, "illegal character ':' (ASCII #58)", fatal.Message)
}

func TestIdentifierBoundary(t *testing.T) {
	ok32 := strings.Repeat("a", 32)
	toks, fatal := tokenize(t, ok32)
	require.Nil(t, fatal)
	assert.Equal(t, ok32, toks[0].Lexeme)

	bad33 := strings.Repeat("a", 33)
	_, fatal = tokenize(t, bad33)
	require.NotNil(t, fatal)
	assert.Equal(t, "identifier too long", fatal.Message)
}

func TestIntegerLiteralBoundary(t *testing.T) {
	toks, fatal := tokenize(t, "2147483647")
	require.Nil(t, fatal)
	assert.Equal(t, 2147483647, toks[0].IntVal)

	_, fatal = tokenize(t, "2147483648")
	require.NotNil(t, fatal)
	assert.Equal(t, "number too large", fatal.Message)
}

func TestStringEscapesAccepted(t *testing.T) {
	toks, fatal := tokenize(t, `"a\nb\tc\"d\\e"`)
	require.Nil(t, fatal)
	assert.Equal(t, `a\nb\tc\"d\\e`, toks[0].StrVal)
}

func TestStringEscapesRejected(t *testing.T) {
	for _, esc := range []string{"a", "b", "f", "r", "v", "'", "?"} {
		_, fatal := tokenize(t, `"\`+esc+`"`)
		require.NotNilf(t, fatal, "escape %q should be rejected", esc)
		assert.Equal(t, "illegal escape code '\\"+esc+"' in string", fatal.Message)
	}
}

func TestStringNotClosed(t *testing.T) {
	_, fatal := tokenize(t, `"abc`)
	require.NotNil(t, fatal)
	assert.Equal(t, "string not closed", fatal.Message)
}

func TestNonPrintableInString(t *testing.T) {
	_, fatal := tokenize(t, "\"a\x01b\"")
	require.NotNil(t, fatal)
	assert.Equal(t, "non-printable character (ASCII #1) in string", fatal.Message)
}

func TestNestedCommentsThreeLevelsDeep(t *testing.T) {
	toks, fatal := tokenize(t, "{ a { b { c } d } e } begin")
	require.Nil(t, fatal)
	assert.Equal(t, token.KwBegin, toks[0].Kind)
}

func TestNestedCommentMissingInnermostClose(t *testing.T) {
	_, fatal := tokenize(t, "{ outer { inner ")
	require.NotNil(t, fatal)
	assert.Equal(t, "comment not closed", fatal.Message)
	assert.Equal(t, token.Position{Line: 1, Col: 1}, fatal.Pos)
}

func TestLineTrackingAfterNewlines(t *testing.T) {
	toks, fatal := tokenize(t, "begin\nend")
	require.Nil(t, fatal)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
}
