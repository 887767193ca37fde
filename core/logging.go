package core

import (
	"fmt"
	"os"
)

// Printf logs an informational message to stdout.
func Printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Warningf logs a warning to stderr.
func Warningf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

// Errorf logs an error to stderr. It accepts either an error value or a
// format string followed by arguments.
func Errorf(msg any, args ...any) {
	switch v := msg.(type) {
	case error:
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", v.Error())
	case string:
		fmt.Fprintf(os.Stderr, "ERROR: "+v+"\n", args...)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", v)
	}
}
