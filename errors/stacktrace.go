package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

const pkgPath = "github.com/contribute-dao/weft/errors"

// creators are the functions of this package that attach a stack trace.
// Their frames are cut from the top of a trace, together with the runtime
// frames of a recovered panic.
var creators = []string{
	pkgPath + ".Wrap",
	pkgPath + ".Field",
	pkgPath + ".(*Error).New",
	pkgPath + ".Recover",
	"runtime.",
}

// Format prints the error like pkg/errors does:
//
//	%s  the message
//	%v  the message and the [file:line] where the error was created
//	%+v the full stack trace followed by the message
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", stack)
		fmt.Fprint(s, e.Error())
		return
	}
	fmt.Fprint(s, e.Error())
	if len(stack) > 0 {
		_, file, line := frame(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// frame resolves a pkg/errors frame the same way its own formatter does.
func frame(f errors.Frame) (fn string, file string, line int) {
	pc := uintptr(f) - 1
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return "unknown", "unknown", 0
	}
	file, line = rf.FileLine(pc)
	return rf.Name(), file, line
}

func calledFrom(f errors.Frame, prefixes ...string) bool {
	fn, _, _ := frame(f)
	for _, p := range prefixes {
		if strings.HasPrefix(fn, p) {
			return true
		}
	}
	return false
}

// trimInternal cuts the frames of this package from the top of the trace
// and the goroutine and test runner frames from its bottom.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && calledFrom(st[0], creators...) {
		st = st[1:]
	}
	for len(st) > 1 && calledFrom(st[len(st)-1], "runtime.", "testing.") {
		st = st[:len(st)-1]
	}
	return st
}

// stackTrace returns the trace of the innermost wrap, the only one that
// records it, or nil.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
