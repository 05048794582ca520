package lsp

import (
	"github.com/pkg/errors"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"parsekit/calc"
)

// Diagnose parses a calc document and converts its syntax error, if any,
// into LSP diagnostics. A valid document yields an empty, non-nil slice so
// that publishing it clears earlier diagnostics.
func Diagnose(path, text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := calc.Parse(path, text)
	if err == nil {
		return diagnostics
	}

	var serr *calc.SyntaxError
	if !errors.As(err, &serr) {
		return append(diagnostics, protocol.Diagnostic{
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString(lsName),
			Message:  err.Error(),
		})
	}

	length := serr.Length
	if length <= 0 {
		length = 1
	}
	// LSP positions are 0-based
	line := uint32(max(0, serr.Position.Line-1))
	character := uint32(max(0, serr.Position.Column-1))

	return append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: character},
			End:   protocol.Position{Line: line, Character: character + uint32(length)},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString(lsName),
		Message:  serr.Message,
	})
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
