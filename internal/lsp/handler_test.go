package lsp_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"parsekit/internal/lsp"
)

type notification struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func recordingContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, _ := params.(*protocol.PublishDiagnosticsParams)
			*sent = append(*sent, notification{method: method, params: p})
		},
	}
}

func TestDiagnoseValidDocument(t *testing.T) {
	diagnostics := lsp.Diagnose("ok.calc", "let x = 1;\nprint x * 2;\n")
	require.NotNil(t, diagnostics)
	assert.Empty(t, diagnostics)
}

func TestDiagnoseSyntaxError(t *testing.T) {
	diagnostics := lsp.Diagnose("bad.calc", "let x = 1;\nlet = 2;\n")
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, "expected identifier", d.Message)
	assert.Equal(t, protocol.Position{Line: 1, Character: 4}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 5}, d.Range.End)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
}

func TestDiagnoseLexError(t *testing.T) {
	diagnostics := lsp.Diagnose("bad.calc", "print 1 @ 2;")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, uint32(8), diagnostics[0].Range.Start.Character)
}

func TestDocumentLifecycle(t *testing.T) {
	var sent []notification
	ctx := recordingContext(&sent)
	handler := lsp.NewHandler()
	uri := "file:///tmp/prog.calc"

	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "calc", Version: 1, Text: "print (1;"},
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, sent[0].method)
	require.NotNil(t, sent[0].params)
	assert.Equal(t, uri, sent[0].params.URI)
	require.Len(t, sent[0].params.Diagnostics, 1)
	assert.Equal(t, "expected ')'", sent[0].params.Diagnostics[0].Message)

	err = handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "print (1);"},
		},
	})
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Empty(t, sent[1].params.Diagnostics, "fixed document clears diagnostics")

	text, ok := handler.Content(uri)
	require.True(t, ok)
	assert.Equal(t, "print (1);", text)

	err = handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.Len(t, sent, 3)
	assert.Empty(t, sent[2].params.Diagnostics)

	_, ok = handler.Content(uri)
	assert.False(t, ok)
}

func TestInitializeAdvertisesFullSync(t *testing.T) {
	handler := lsp.NewHandler()
	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	res, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	opts, ok := res.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	require.NotNil(t, opts.Change)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *opts.Change)

	sem, ok := res.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	require.True(t, ok)
	assert.Equal(t, lsp.SemanticTokenTypes, sem.Legend.TokenTypes)
	assert.Equal(t, lsp.SemanticTokenModifiers, sem.Legend.TokenModifiers)
}

func TestProtocolWiresSemanticTokens(t *testing.T) {
	assert.NotNil(t, lsp.NewHandler().Protocol().TextDocumentSemanticTokensFull)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	var sent []notification
	ctx := recordingContext(&sent)
	handler := lsp.NewHandler()
	uri := "file:///tmp/tokens.calc"

	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  uri,
			Text: "let x = 1;\nprint x * -2; # done\n",
		},
	})
	require.NoError(t, err)

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	require.Len(t, decoded, 9)

	assertToken(t, &decoded[0], 1, 1, 3, "keyword", nil)
	assertToken(t, &decoded[1], 1, 5, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 7, 1, "operator", nil)
	assertToken(t, &decoded[3], 1, 9, 1, "number", nil)
	assertToken(t, &decoded[4], 2, 1, 5, "keyword", nil)
	assertToken(t, &decoded[5], 2, 7, 1, "variable", nil)
	assertToken(t, &decoded[6], 2, 9, 1, "operator", nil)
	assertToken(t, &decoded[7], 2, 11, 1, "operator", nil)
	assertToken(t, &decoded[8], 2, 12, 1, "number", nil)
}

func TestSemanticTokensFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.calc")
	require.NoError(t, os.WriteFile(path, []byte("print 42;"), 0o644))

	handler := lsp.NewHandler()
	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file://" + filepath.ToSlash(path)},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assertToken(t, &decoded[0], 1, 1, 5, "keyword", nil)
	assertToken(t, &decoded[1], 1, 7, 2, "number", nil)
}

func TestSemanticTokensLexErrorIsEmpty(t *testing.T) {
	var sent []notification
	ctx := recordingContext(&sent)
	handler := lsp.NewHandler()
	uri := "file:///tmp/broken.calc"

	require.NoError(t, handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "print 1 @ 2;"},
	}))

	tokens, err := handler.TextDocumentSemanticTokensFull(ctx, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)
}

type decodedToken struct {
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]decodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []decodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine, deltaStart := raw[i], raw[i+1]
		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if raw[i+4]&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, decodedToken{
			Line:      line + 1,
			Char:      char + 1,
			Length:    raw[i+2],
			Type:      lsp.SemanticTokenTypes[raw[i+3]],
			Modifiers: modifiers,
		})
	}
	return decoded, nil
}

func assertToken(t *testing.T, token *decodedToken, line, char, length uint32, tokenType string, modifiers []string) {
	t.Helper()
	require.Equal(t, line, token.Line, "line mismatch")
	require.Equal(t, char, token.Char, "char mismatch")
	require.Equal(t, length, token.Length, "length mismatch")
	require.Equal(t, tokenType, token.Type, "type mismatch")
	require.ElementsMatch(t, modifiers, token.Modifiers, "modifiers mismatch")
}
