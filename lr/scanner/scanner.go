/*
Package scanner defines an interface for scanners used to read grammar
sources, and an adapter for lexmachine implementing it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen"
)

// tracer traces with key 'slrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.scanner")
}

// EOF is the token type signalling the end of input.
const EOF slrgen.TokType = -1

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() slrgen.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for
// the LexMachine scanner.
type DefaultToken struct {
	kind   slrgen.TokType
	lexeme string
	Val    interface{}
	span   slrgen.Span
}

var _ slrgen.Token = DefaultToken{}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ slrgen.TokType, lexeme string, span slrgen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() slrgen.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() slrgen.Span {
	return t.span
}
