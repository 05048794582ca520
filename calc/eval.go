package calc

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("parsec.calc")

// RuntimeError is an evaluation failure such as division by zero.
type RuntimeError struct {
	Message string
	Stmt    Stmt
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error in `%s`: %s", e.Stmt, e.Message)
}

// Env holds variable bindings.
type Env map[string]int64

// Eval runs every statement of prog in order, writing printed values to out.
func Eval(prog *Program, env Env, out io.Writer) error {
	for _, stmt := range prog.Stmts {
		switch s := stmt.(type) {
		case *LetStmt:
			v, err := evalExpr(s.Value, env)
			if err != nil {
				return &RuntimeError{Message: err.Error(), Stmt: s}
			}
			log.Debugf("let %s = %d", s.Name, v)
			env[s.Name] = v
		case *PrintStmt:
			v, err := evalExpr(s.Value, env)
			if err != nil {
				return &RuntimeError{Message: err.Error(), Stmt: s}
			}
			if _, err := fmt.Fprintln(out, v); err != nil {
				return errors.Wrap(err, "failed to write output")
			}
		default:
			return errors.Errorf("unknown statement %T", stmt)
		}
	}
	return nil
}

func evalExpr(e Expr, env Env) (int64, error) {
	switch e := e.(type) {
	case *Num:
		return e.Value, nil
	case *Var:
		v, ok := env[e.Name]
		if !ok {
			return 0, errors.Errorf("undefined variable %s", e.Name)
		}
		return v, nil
	case *Neg:
		x, err := evalExpr(e.X, env)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case *Binary:
		l, err := evalExpr(e.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(e.Right, env)
		if err != nil {
			return 0, err
		}
		return applyOp(e.Op, l, r)
	}
	return 0, errors.Errorf("unknown expression %T", e)
}

func applyOp(op string, l, r int64) (int64, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/", "%":
		if r == 0 {
			return 0, errors.New("division by zero")
		}
		if op == "/" {
			return l / r, nil
		}
		return l % r, nil
	}
	return 0, errors.Errorf("unknown operator %s", op)
}

// Run parses and evaluates source in a fresh environment.
func Run(filename, source string, out io.Writer) error {
	prog, err := Parse(filename, source)
	if err != nil {
		return err
	}
	return Eval(prog, Env{}, out)
}
