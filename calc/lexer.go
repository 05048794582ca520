package calc

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Lexer tokenizes calc source. Rule order matters: the first matching rule
// wins.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/%()=;]`},
})

var (
	symbols      = Lexer.Symbols()
	intToken     = symbols["Int"]
	identToken   = symbols["Ident"]
	punctToken   = symbols["Punct"]
	elidedTokens = []lexer.TokenType{symbols["Comment"], symbols["Whitespace"]}
	keywords     = map[string]bool{"let": true, "print": true}
)

// Source is the token stream of a calc program with trivia removed.
type Source struct {
	Filename string
	Tokens   []lexer.Token
	// End is the position just past the last token.
	End lexer.Position
}

// Tokenize lexes source, dropping comments and whitespace.
func Tokenize(filename, source string) (*Source, error) {
	lex, err := Lexer.LexString(filename, source)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start lexer")
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &SyntaxError{Message: lexErr.Msg, Position: lexErr.Pos}
		}
		return nil, errors.Wrapf(err, "failed to tokenize %s", filename)
	}

	src := &Source{Filename: filename}
	for _, tok := range all {
		if tok.EOF() {
			src.End = tok.Pos
			continue
		}
		if isElided(tok.Type) {
			continue
		}
		src.Tokens = append(src.Tokens, tok)
	}
	return src, nil
}

// PositionOf maps a token index to a source position. Indices at or past the
// end map to the end of input.
func (s *Source) PositionOf(index int) lexer.Position {
	if index >= 0 && index < len(s.Tokens) {
		return s.Tokens[index].Pos
	}
	return s.End
}

// LengthOf returns the length of the token at index, or 1 past the end.
func (s *Source) LengthOf(index int) int {
	if index >= 0 && index < len(s.Tokens) && len(s.Tokens[index].Value) > 0 {
		return len(s.Tokens[index].Value)
	}
	return 1
}

// IsKeyword reports whether an identifier is reserved.
func IsKeyword(ident string) bool {
	return keywords[ident]
}

func isElided(tt lexer.TokenType) bool {
	for _, e := range elidedTokens {
		if tt == e {
			return true
		}
	}
	return false
}
