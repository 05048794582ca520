package calc

import (
	"fmt"
	"strings"
)

// Program is a sequence of statements.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Stmts {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

type Stmt interface {
	fmt.Stringer
	stmtNode()
}

type Expr interface {
	fmt.Stringer
	exprNode()
}

// LetStmt binds Name to the value of Value.
type LetStmt struct {
	Name  string
	Value Expr
}

// PrintStmt writes the value of Value to the output.
type PrintStmt struct {
	Value Expr
}

type Num struct {
	Value int64
}

type Var struct {
	Name string
}

// Neg is unary minus.
type Neg struct {
	X Expr
}

type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*LetStmt) stmtNode()   {}
func (*PrintStmt) stmtNode() {}

func (*Num) exprNode()    {}
func (*Var) exprNode()    {}
func (*Neg) exprNode()    {}
func (*Binary) exprNode() {}

func (s *LetStmt) String() string   { return fmt.Sprintf("let %s = %s;", s.Name, s.Value) }
func (s *PrintStmt) String() string { return fmt.Sprintf("print %s;", s.Value) }

func (e *Num) String() string    { return fmt.Sprintf("%d", e.Value) }
func (e *Var) String() string    { return e.Name }
func (e *Neg) String() string    { return fmt.Sprintf("(-%s)", e.X) }
func (e *Binary) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }
