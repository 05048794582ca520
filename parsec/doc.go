// Package parsec is a monadic parser-combinator engine over an arbitrary
// token stream.
//
// A parser is a value implementing Parser. It reads tokens from a State and
// either succeeds with a value or fails with a *ParseError carrying the
// position and a message. Combinators build new parsers from existing ones:
//
//	Pack, Fail, Try          primitives
//	Either (and .Or)         alternation
//	Bind                     value-dependent continuation
//	Then, Over               sequencing, keeping the right or left value
//
// Alternation only falls through to the next branch when the failing branch
// consumed no input. Wrap a branch in Try to make its failures rewind.
//
// Parsers are built once and may be run any number of times, concurrently,
// as long as each run uses its own State.
package parsec
