package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"parsekit/parsec"
)

type (
	exprParser = parsec.Parser[lexer.Token, Expr]
	stmtParser = parsec.Parser[lexer.Token, Stmt]
)

// SyntaxError is a lexing or parsing error located in the source.
type SyntaxError struct {
	Message  string
	Position lexer.Position
	Length   int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// The grammar, lowest precedence first:
//
//	program = stmt* EOF
//	stmt    = "let" Ident "=" expr ";" | "print" expr ";"
//	expr    = term (("+" | "-") term)*
//	term    = unary (("*" | "/" | "%") unary)*
//	unary   = "-" unary | atom
//	atom    = Int | Ident | "(" expr ")"
var program = buildProgram()

func kind(tt lexer.TokenType, what string) parsec.Func[lexer.Token, lexer.Token] {
	return parsec.Satisfy(func(tok lexer.Token) bool {
		return tok.Type == tt
	}, "expected "+what)
}

func punct(value string) parsec.Func[lexer.Token, lexer.Token] {
	return parsec.Satisfy(func(tok lexer.Token) bool {
		return tok.Type == punctToken && tok.Value == value
	}, fmt.Sprintf("expected '%s'", value))
}

func operator(ops ...string) parsec.Func[lexer.Token, string] {
	return parsec.Map[lexer.Token, lexer.Token, string](parsec.Satisfy(func(tok lexer.Token) bool {
		if tok.Type != punctToken {
			return false
		}
		for _, op := range ops {
			if tok.Value == op {
				return true
			}
		}
		return false
	}, fmt.Sprintf("expected one of %q", ops)), func(tok lexer.Token) string {
		return tok.Value
	})
}

func identifier() parsec.Func[lexer.Token, string] {
	return parsec.Map[lexer.Token, lexer.Token, string](parsec.Satisfy(func(tok lexer.Token) bool {
		return tok.Type == identToken && !keywords[tok.Value]
	}, "expected identifier"), func(tok lexer.Token) string {
		return tok.Value
	})
}

func keyword() parsec.Func[lexer.Token, string] {
	return parsec.Map[lexer.Token, lexer.Token, string](parsec.Satisfy(func(tok lexer.Token) bool {
		return tok.Type == identToken && keywords[tok.Value]
	}, "expected statement"), func(tok lexer.Token) string {
		return tok.Value
	})
}

func number() exprParser {
	return parsec.Bind[lexer.Token, lexer.Token, Expr](kind(intToken, "integer"), func(tok lexer.Token) exprParser {
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return parsec.Failf[lexer.Token, Expr]("integer literal %s out of range", tok.Value)
		}
		return parsec.Pack[lexer.Token, Expr](&Num{Value: n})
	})
}

func minInt() exprParser {
	return parsec.Bind[lexer.Token, lexer.Token, Expr](kind(intToken, "integer"), func(tok lexer.Token) exprParser {
		n, err := strconv.ParseUint(tok.Value, 10, 64)
		if err != nil || n != 1<<63 {
			return parsec.Fail[lexer.Token, Expr]("not the int64 minimum")
		}
		return parsec.Pack[lexer.Token, Expr](&Num{Value: math.MinInt64})
	})
}

type operand struct {
	op    string
	right Expr
}

// chainLeft parses operand (op operand)* and folds it left-associatively.
func chainLeft(next exprParser, ops ...string) exprParser {
	tail := parsec.Bind[lexer.Token, string, operand](operator(ops...), func(op string) parsec.Parser[lexer.Token, operand] {
		return parsec.Map[lexer.Token, Expr, operand](next, func(right Expr) operand {
			return operand{op: op, right: right}
		})
	})
	return parsec.Bind[lexer.Token, Expr, Expr](next, func(left Expr) exprParser {
		return parsec.Map[lexer.Token, []operand, Expr](parsec.Many[lexer.Token, operand](tail), func(rest []operand) Expr {
			for _, r := range rest {
				left = &Binary{Op: r.op, Left: left, Right: r.right}
			}
			return left
		})
	})
}

func buildExpr() exprParser {
	var expr exprParser
	exprRef := parsec.Lazy(func() exprParser { return expr })

	variable := parsec.Map[lexer.Token, string, Expr](identifier(), func(name string) Expr {
		return &Var{Name: name}
	})
	paren := parsec.Then[lexer.Token, Expr](punct("("), exprRef).Over(punct(")"))
	atom := parsec.Label[lexer.Token, Expr](parsec.Either[lexer.Token, Expr](number(), variable).Or(paren), "expected expression")

	var unary exprParser
	unaryRef := parsec.Lazy(func() exprParser { return unary })
	negated := parsec.Map[lexer.Token, Expr, Expr](unaryRef, func(x Expr) Expr {
		return &Neg{X: x}
	})
	// The magnitude of the smallest int64 only fits once negated.
	neg := parsec.Then[lexer.Token, Expr](punct("-"), parsec.Either[lexer.Token, Expr](parsec.Try[lexer.Token, Expr](minInt()), negated))
	unary = parsec.Trace[lexer.Token, Expr]("unary", parsec.Either[lexer.Token, Expr](neg, atom))

	term := chainLeft(unary, "*", "/", "%")
	expr = parsec.Trace[lexer.Token, Expr]("expr", chainLeft(term, "+", "-"))
	return expr
}

func buildProgram() parsec.Parser[lexer.Token, *Program] {
	expr := buildExpr()

	letBody := parsec.Bind[lexer.Token, string, Stmt](identifier(), func(name string) stmtParser {
		return parsec.Map[lexer.Token, Expr, Stmt](parsec.Then[lexer.Token, Expr](punct("="), expr), func(value Expr) Stmt {
			return &LetStmt{Name: name, Value: value}
		})
	})
	printBody := parsec.Map[lexer.Token, Expr, Stmt](expr, func(value Expr) Stmt {
		return &PrintStmt{Value: value}
	})

	// The keyword decides which statement body follows.
	stmt := parsec.Bind[lexer.Token, string, Stmt](keyword(), func(kw string) stmtParser {
		switch kw {
		case "let":
			return letBody
		case "print":
			return printBody
		}
		return parsec.Failf[lexer.Token, Stmt]("unsupported statement %q", kw)
	}).Over(punct(";"))

	stmts := parsec.Many[lexer.Token, Stmt](parsec.Trace[lexer.Token, Stmt]("stmt", stmt))
	end := parsec.Label[lexer.Token, struct{}](parsec.EOF[lexer.Token](), "expected statement")
	return parsec.Map[lexer.Token, []Stmt, *Program](parsec.Over[lexer.Token, []Stmt](stmts, end), func(stmts []Stmt) *Program {
		return &Program{Stmts: stmts}
	})
}

// ParseTokens parses a tokenized program.
func ParseTokens(src *Source) (*Program, error) {
	prog, err := program.Parse(parsec.NewVecState(src.Tokens))
	if err != nil {
		if perr, ok := parsec.AsParseError(err); ok {
			return nil, &SyntaxError{
				Message:  perr.Message,
				Position: src.PositionOf(int(perr.Pos)),
				Length:   src.LengthOf(int(perr.Pos)),
			}
		}
		return nil, errors.Wrapf(err, "failed to parse %s", src.Filename)
	}
	return prog, nil
}

// Parse lexes and parses a calc program.
func Parse(filename, source string) (*Program, error) {
	src, err := Tokenize(filename, source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(src)
}
