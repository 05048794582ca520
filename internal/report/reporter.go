package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"parsekit/calc"
)

// Level represents the severity of a diagnostic
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Diagnostic is a message attached to a region of a source file
type Diagnostic struct {
	Level   Level
	Kind    string // "syntax", "runtime", ...
	Message string
	Line    int // 1-based, 0 when the location is unknown
	Column  int // 1-based
	Length  int
	Notes   []string
}

// Reporter renders diagnostics against the lines of one source file
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for a single source file.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FromError classifies err into a Diagnostic. Syntax errors carry their
// source location, every other error is reported without one.
func FromError(err error) Diagnostic {
	var serr *calc.SyntaxError
	if errors.As(err, &serr) {
		return Diagnostic{
			Level:   Error,
			Kind:    "syntax",
			Message: serr.Message,
			Line:    serr.Position.Line,
			Column:  serr.Position.Column,
			Length:  serr.Length,
		}
	}
	var rerr *calc.RuntimeError
	if errors.As(err, &rerr) {
		return Diagnostic{
			Level:   Error,
			Kind:    "runtime",
			Message: rerr.Message,
			Notes:   []string{fmt.Sprintf("while evaluating `%s`", rerr.Stmt)},
		}
	}
	return Diagnostic{Level: Error, Message: err.Error()}
}

// Format renders d in the style:
//
//	error[syntax]: expected ';'
//	    --> prog.calc:2:8
//	     │
//	   1 │ print 1;
//	   2 │ print 2
//	     │        ^
func (r *Reporter) Format(d Diagnostic) string {
	var result strings.Builder

	levelColor := colorFor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if d.Kind != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Kind, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	width := lineNumberWidth(d.Line)
	indent := strings.Repeat(" ", width)

	if d.Line > 0 {
		result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Line, d.Column))
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		if d.Line > 1 && d.Line-1 <= len(r.lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				dim(fmt.Sprintf("%*d", width, d.Line-1)), dim("│"), r.lines[d.Line-2]))
		}

		if d.Line <= len(r.lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				bold(fmt.Sprintf("%*d", width, d.Line)), dim("│"), r.lines[d.Line-1]))
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				indent, dim("│"), marker(d.Column, d.Length, d.Level)))
		}
	} else {
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("-->"), r.filename))
	}

	for _, note := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatError is shorthand for Format(FromError(err))
func (r *Reporter) FormatError(err error) string {
	return r.Format(FromError(err))
}

func colorFor(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int, level Level) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + colorFor(level)(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
