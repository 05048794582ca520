package lsp

import (
	"slices"

	"github.com/alecthomas/participle/v2/lexer"

	"parsekit/calc"
)

// SemanticTokenTypes is the token type legend advertised in Initialize.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

// SemanticTokenModifiers is the modifier legend advertised in Initialize.
var SemanticTokenModifiers = []string{
	"declaration",
}

var (
	symbols     = calc.Lexer.Symbols()
	intType     = symbols["Int"]
	identType   = symbols["Ident"]
	punctType   = symbols["Punct"]
	operatorSet = []string{"+", "-", "*", "/", "%", "="}
)

// SemanticToken is a single LSP semantic token entry with 0-based line and
// start character.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies the lexed tokens of a document. Parentheses
// and statement terminators carry no semantic token.
func collectSemanticTokens(src *calc.Source) []SemanticToken {
	var tokens []SemanticToken
	if src == nil {
		return tokens
	}

	declaring := false
	for _, tok := range src.Tokens {
		switch {
		case tok.Type == intType:
			tokens = append(tokens, makeToken(tok, "number", 0)...)
		case tok.Type == identType && calc.IsKeyword(tok.Value):
			tokens = append(tokens, makeToken(tok, "keyword", 0)...)
			declaring = tok.Value == "let"
			continue
		case tok.Type == identType:
			decl := 0
			if declaring {
				decl = 1
			}
			tokens = append(tokens, makeToken(tok, "variable", decl)...)
		case tok.Type == punctType && slices.Contains(operatorSet, tok.Value):
			tokens = append(tokens, makeToken(tok, "operator", 0)...)
		}
		declaring = false
	}
	return tokens
}

func makeToken(tok lexer.Token, tokenType string, declModifier int) []SemanticToken {
	if tok.Value == "" {
		return nil
	}
	return []SemanticToken{{
		Line:           uint32(tok.Pos.Line - 1),
		StartChar:      uint32(tok.Pos.Column - 1),
		Length:         uint32(len(tok.Value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}}
}

// encodeSemanticTokens packs tokens into the relative delta-line/delta-start
// wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
