package app

import (
	"fmt"
	"io"
)

// WriterNotifier prints user-facing success and failure notices to a writer,
// normally stderr so they do not mix with command output on stdout.
type WriterNotifier struct {
	w io.Writer
}

// NewWriterNotifier creates a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Success(msg string) {
	fmt.Fprintln(n.w, msg)
}

func (n *WriterNotifier) Failure(msg string) {
	fmt.Fprintln(n.w, "Error:", msg)
}
