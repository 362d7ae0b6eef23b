package tokmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/slrgen/lr"
	"github.com/stretchr/testify/assert"
)

func makeGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("G")
	b.LHS("E").N("E").T("+").T("id").End()
	b.LHS("E").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	input := `
[tokens]
"'+'" = "Token::Plus"
"id" = "Token::Ident"
"$" = "Token::EOF"
"'-'" = "Token::Minus"
`
	m, err := Load(strings.NewReader(input))
	if !assert.NoError(err) {
		return
	}
	g := makeGrammar(t)

	assert.False(m.IsIdentity())
	assert.Equal(4, m.Len())
	assert.NoError(m.Check(g))

	tag, err := m.Lookup(g.Terminal("+"))
	assert.NoError(err)
	assert.Equal("Token::Plus", tag)

	tag, err = m.Lookup(g.Terminal("id"))
	assert.NoError(err)
	assert.Equal("Token::Ident", tag)

	tag, err = m.Lookup(g.EOF())
	assert.NoError(err)
	assert.Equal("Token::EOF", tag)

	assert.Equal([]string{"-"}, m.Unused(g))
}

func Test_Load_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "bad toml", input: "[tokens\n"},
		{name: "no tokens table", input: "outdir = \"gen\"\n"},
		{name: "empty tokens table", input: "[tokens]\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func Test_Check_Unmapped(t *testing.T) {
	assert := assert.New(t)

	m := New(map[string]string{"'+'": "PLUS"})
	g := makeGrammar(t)

	err := m.Check(g)
	var ute *UnmappedTerminalError
	if !assert.True(errors.As(err, &ute)) {
		return
	}
	assert.Equal([]string{"'id'"}, ute.Terminals)

	_, err = m.Lookup(g.Terminal("id"))
	assert.True(errors.As(err, &ute))

	tag, err := m.Lookup(g.EOF())
	assert.NoError(err)
	assert.Equal("$", tag)
}

func Test_Identity(t *testing.T) {
	assert := assert.New(t)

	m := Identity()
	g := makeGrammar(t)

	assert.True(m.IsIdentity())
	assert.NoError(m.Check(g))

	tag, _ := m.Lookup(g.Terminal("+"))
	assert.Equal("'+'", tag)
	tag, _ = m.Lookup(g.EOF())
	assert.Equal("$", tag)
}
