// Package tokmap maps grammar terminals to the token tags of an external
// scanner. The tags are used when dumping ACTION tables.
//
// Token maps are read from TOML, with terminal literals as keys:
//
//	[tokens]
//	"'+'" = "Token::Plus"
//	"'id'" = "Token::Ident"
//	"$" = "Token::EOF"
//
// Keys may be given with or without the surrounding quotes.
package tokmap

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/slrgen/lr"
)

// UnmappedTerminalError is returned when terminals of a grammar have no
// token tag.
type UnmappedTerminalError struct {
	Terminals []string
}

func (e *UnmappedTerminalError) Error() string {
	return fmt.Sprintf("no token tag for terminal(s) %s", strings.Join(e.Terminals, ", "))
}

// Map is a mapping from terminal literals to token tags. The zero value is
// an empty map, which maps no terminal at all.
type Map struct {
	tags     map[string]string
	identity bool
}

// Identity returns a map which uses the quoted terminal literal itself as
// its tag.
func Identity() *Map {
	return &Map{identity: true}
}

// New creates a map from literals to tags. Keys are literals with or without
// quotes.
func New(tags map[string]string) *Map {
	m := &Map{tags: make(map[string]string, len(tags))}
	for k, v := range tags {
		m.tags[key(k)] = v
	}
	return m
}

// key strips the quotes from a literal.
func key(lit string) string {
	if len(lit) >= 2 && strings.HasPrefix(lit, "'") && strings.HasSuffix(lit, "'") {
		return lit[1 : len(lit)-1]
	}
	return lit
}

type tomlTokenMap struct {
	Tokens map[string]string `toml:"tokens"`
}

// Load reads a TOML token map.
func Load(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var tm tomlTokenMap
	if err := toml.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("token map: %w", err)
	}
	if len(tm.Tokens) == 0 {
		return nil, fmt.Errorf("token map: no [tokens] table or table is empty")
	}
	return New(tm.Tokens), nil
}

// LoadFile reads a TOML token map from a file.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// IsIdentity returns true for maps created by Identity.
func (m *Map) IsIdentity() bool {
	return m.identity
}

// Len returns the number of explicit entries.
func (m *Map) Len() int {
	return len(m.tags)
}

// Lookup returns the tag for terminal A. The end-of-input marker '$' falls back
// to "$" if it is not mapped explicitly.
func (m *Map) Lookup(A *lr.Symbol) (string, error) {
	if m.identity {
		if A.Name == lr.EOFName {
			return A.Name, nil
		}
		return A.String(), nil
	}
	if tag, ok := m.tags[A.Name]; ok {
		return tag, nil
	}
	if A.Name == lr.EOFName {
		return lr.EOFName, nil
	}
	return "", &UnmappedTerminalError{Terminals: []string{A.String()}}
}

// Check reports all terminals of g without a tag, in order of their index.
func (m *Map) Check(g *lr.Grammar) error {
	var missing []string
	for _, A := range g.Terminals() {
		if _, err := m.Lookup(A); err != nil {
			missing = append(missing, A.String())
		}
	}
	if len(missing) > 0 {
		return &UnmappedTerminalError{Terminals: missing}
	}
	return nil
}

// Unused returns the literals of explicit entries which are not terminals of
// g, sorted.
func (m *Map) Unused(g *lr.Grammar) []string {
	var unused []string
	for k := range m.tags {
		if g.Terminal(k) == nil {
			unused = append(unused, k)
		}
	}
	sort.Strings(unused)
	return unused
}
