package helpers

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

const modulePrefix = "github.com/jsgen/jsgen/"

// PrettyPrintedStack describes the calling goroutine's stack with one frame
// per line, innermost first:
//
//	js_printer.(*printer).printExprNode (internal/js_printer/js_printer_expr.go:120)
//
// It's used to report panics that escaped the printer.
func PrettyPrintedStack() string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	sb := strings.Builder{}
	for {
		frame, more := frames.Next()
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s (%s:%d)", shortFunctionName(frame.Function), shortFileName(frame.File), frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}

// "github.com/jsgen/jsgen/internal/js_printer.(*printer).print" => "js_printer.(*printer).print"
func shortFunctionName(name string) string {
	if slash := strings.LastIndexByte(name, '/'); slash != -1 {
		name = name[slash+1:]
	}
	return name
}

// Files in this module are shown relative to its root, whether or not the
// binary was built with "-trimpath". Other files keep their directory name.
func shortFileName(file string) string {
	if strings.HasPrefix(file, moduleRoot) {
		return strings.TrimPrefix(file, moduleRoot)
	}
	if strings.HasPrefix(file, modulePrefix) {
		return strings.TrimPrefix(file, modulePrefix)
	}
	dir, base := path.Split(file)
	return path.Join(path.Base(dir), base)
}

var moduleRoot = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok || !strings.HasSuffix(file, "internal/helpers/stack.go") {
		return modulePrefix
	}
	return strings.TrimSuffix(file, "internal/helpers/stack.go")
}()
