package parsec

import "github.com/tliron/commonlog"

var traceLog = commonlog.GetLogger("parsec.trace")

// Trace wraps p and logs each invocation at debug level under name. It does
// not change the behavior of p.
func Trace[T, R any](name string, p Parser[T, R]) Func[T, R] {
	return func(st State[T]) (R, error) {
		start := st.Pos()
		traceLog.Debugf("%s: enter at %d", name, start)
		val, err := p.Parse(st)
		if err != nil {
			traceLog.Debugf("%s: failed at %d (started %d): %s", name, st.Pos(), start, err)
			return val, err
		}
		traceLog.Debugf("%s: matched %d..%d", name, start, st.Pos())
		return val, nil
	}
}
