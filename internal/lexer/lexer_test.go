package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Basic(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \t  ", nil},
		{"single word", "foo", []string{"foo"}},
		{"multiple words", "foo bar baz", []string{"foo", "bar", "baz"}},
		{"leading trailing ws", "  foo bar  ", []string{"foo", "bar"}},
		{"tabs as whitespace", "foo\tbar", []string{"foo", "bar"}},
		{"double quoted", `"foo bar"`, []string{"foo bar"}},
		{"double quoted escaped quote", `"foo\"bar"`, []string{`foo"bar`}},
		{"double quoted escaped backslash", `"foo\\bar"`, []string{`foo\bar`}},
		{"double quoted non-special escape kept", `"foo\bar"`, []string{`foo\bar`}},
		{"double quoted single quote inside", `"foo'bar"`, []string{"foo'bar"}},
		{"single quoted", `'foo bar'`, []string{"foo bar"}},
		{"single quoted backslash literal", `'foo\bar'`, []string{`foo\bar`}},
		{"single quoted double quote inside", `'foo"bar'`, []string{`foo"bar`}},
		{"embedded single quote trick", `'foo''bar'`, []string{"foobar"}},
		{"escaped space unquoted", `foo\ bar`, []string{"foo bar"}},
		{"escaped backslash unquoted", `foo\\bar`, []string{`foo\bar`}},
		{"unquoted backslash non-special consumed", `foo\bar`, []string{"foobar"}},
		{"mixed quoting", `foo "bar baz" 'qux'`, []string{"foo", "bar baz", "qux"}},
		{"nested quotes combination", `"foo 'bar' \"baz\""`, []string{`foo 'bar' "baz"`}},
		{
			"real cat command args (four spaces preserved)",
			`'./tmp/bar/f    25' './tmp/bar/f    25'`,
			[]string{"./tmp/bar/f    25", "./tmp/bar/f    25"},
		},
		{"escaped quote in unquoted", `foo\"bar`, []string{`foo"bar`}},
		{"multiple escapes", `a\\b\ c`, []string{`a\b c`}},
		{"trailing backslash kept at eof", `foo\`, []string{`foo\`}},
		{"unclosed single quote accepted", `'foo bar`, []string{"foo bar"}},
		{"unclosed double quote accepted", `"foo bar`, []string{"foo bar"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenize_NeverEmptyWords(t *testing.T) {
	inputs := []string{"", "  ", "a b c", `'' ""`, `a '' b`}
	for _, in := range inputs {
		for _, w := range Tokenize(in) {
			assert.NotEmpty(t, w, "input %q produced an empty word", in)
		}
	}
}

func TestTokenize_WhitespaceTrimEquivalence(t *testing.T) {
	s := "foo bar baz"
	require.Equal(t, Tokenize(s), Tokenize("  "+s+"  "))
}

func TestTokenize_SingleQuoteRoundTrip(t *testing.T) {
	tokens := []string{"plain", "with space", "with\ttab", "trailing\\"}
	for _, tok := range tokens {
		got := Tokenize("'" + tok + "'")
		require.Equal(t, []string{tok}, got)
	}
}

func TestTokenize_JoinAndRequote(t *testing.T) {
	words := Tokenize(`foo "bar baz" 'qux quux'`)
	var rejoined string
	for i, w := range words {
		if i > 0 {
			rejoined += " "
		}
		rejoined += Quote(w)
	}
	require.Equal(t, words, Tokenize(rejoined))
}
