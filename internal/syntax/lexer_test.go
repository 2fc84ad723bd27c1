// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sable-lang/sable/internal/syntax"
)

func kinds(t *testing.T, src string) []syntax.TokenKind {
	t.Helper()
	toks, err := syntax.Tokenize(src)
	require.NoError(t, err)
	out := make([]syntax.TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	got := kinds(t, "let rec x = fun n -> n")
	want := []syntax.TokenKind{
		syntax.TokLet, syntax.TokRec, syntax.TokIdent, syntax.TokEquals,
		syntax.TokFun, syntax.TokIdent, syntax.TokArrow, syntax.TokIdent,
		syntax.TokEOF,
	}
	require.Equal(t, want, got)
}

func TestTokenizeUpperIdentIsConstructorTag(t *testing.T) {
	toks, err := syntax.Tokenize("Cons")
	require.NoError(t, err)
	require.Equal(t, syntax.TokUpperIdent, toks[0].Kind)
	require.Equal(t, "Cons", toks[0].Text)
}

func TestTokenizeIntegerLiteral(t *testing.T) {
	toks, err := syntax.Tokenize("12345")
	require.NoError(t, err)
	require.Equal(t, syntax.TokInt, toks[0].Kind)
	require.Equal(t, int64(12345), toks[0].Int.Int64())
}

func TestTokenizeTwoCharOperatorsNotConfusedWithOneChar(t *testing.T) {
	got := kinds(t, "&& || == -> | = ;")
	want := []syntax.TokenKind{
		syntax.TokAndAnd, syntax.TokOrOr, syntax.TokEqEq, syntax.TokArrow,
		syntax.TokPipe, syntax.TokEquals, syntax.TokSemi, syntax.TokEOF,
	}
	require.Equal(t, want, got)
}

func TestTokenizeSkipsCommentsToEndOfLine(t *testing.T) {
	got := kinds(t, "1 # a trailing comment\n+ 2")
	want := []syntax.TokenKind{syntax.TokInt, syntax.TokPlus, syntax.TokInt, syntax.TokEOF}
	require.Equal(t, want, got)
}

func TestTokenizeRejectsUnexpectedCharacter(t *testing.T) {
	_, err := syntax.Tokenize("1 @ 2")
	require.Error(t, err)
}

func TestTokenizeIdentifierAllowsPrimeAndUnderscore(t *testing.T) {
	toks, err := syntax.Tokenize("x' _y")
	require.NoError(t, err)
	require.Equal(t, "x'", toks[0].Text)
	require.Equal(t, "_y", toks[1].Text)
}
