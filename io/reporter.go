package argvio

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// Reporter prints usage text and parse failures. Its Usage method has the
// shape of a parser's usage reporter:
//
//	rep := argvio.NewReporter(io, usageText)
//	p := argv.New(handlers...).OnUsage(rep.Usage)
type Reporter struct {
	io     *IOManager
	log    *Logger
	usage  string
	prog   string
	called atomic.Int64
}

// NewReporter returns a reporter writing usage text to m's error writer.
func NewReporter(m *IOManager, usage string) *Reporter {
	return &Reporter{io: m, log: NewLogger(m), usage: strings.TrimRight(usage, "\n")}
}

// WithProgram sets the program name shown in the usage header.
func (r *Reporter) WithProgram(name string) *Reporter {
	r.prog = name
	return r
}

// Logger returns the logger used for failures.
func (r *Reporter) Logger() *Logger { return r.log }

// Usage prints the usage text.
func (r *Reporter) Usage() {
	r.called.Add(1)
	header := "Usage:"
	if r.prog != "" {
		header = "Usage: " + r.prog + " [flags]"
	}
	fmt.Fprintln(r.io.Err(), r.io.Bold(header))
	if r.usage != "" {
		fmt.Fprintln(r.io.Err(), r.usage)
	}
}

// Failure logs err and each error it wraps as an indented cause.
func (r *Reporter) Failure(err error) {
	if err == nil {
		return
	}
	r.log.Error("%s", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		r.log.Debug("  caused by: %s", cause)
	}
}

// Calls returns how many times Usage ran. Usage may be called from
// concurrent parses.
func (r *Reporter) Calls() int { return int(r.called.Load()) }
